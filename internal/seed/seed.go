package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/traineehub/internal/app/models"
	appRepos "github.com/yigit/traineehub/internal/app/repositories"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/auth"
)

type userCreator interface {
	CreateUser(ctx context.Context, user *appModels.User) error
}

type skillCreator interface {
	CreateSkill(ctx context.Context, skill *appModels.SkillMaster) error
}

type defaultUser struct {
	email      string
	password   string
	name       string
	role       appModels.RoleType
	department string
}

var defaultUsers = []defaultUser{
	{email: "admin@talent-management.com", password: "admin123", name: "システム管理者", role: appModels.RoleAdmin, department: "人事部"},
	{email: "dept@talent-management.com", password: "dept123", name: "現場担当者", role: appModels.RoleDepartment, department: "製造部"},
}

func strPtr(s string) *string { return &s }

// defaultSkills are the skill masters every installation starts with.
var defaultSkills = []appModels.SkillMaster{
	{
		Name: "日本語能力", Category: "言語", Description: strPtr("日本語の読み書き、会話能力"),
		Levels: map[string]string{
			"1": "基本的な挨拶ができる",
			"2": "簡単な日常会話ができる",
			"3": "業務に関する会話ができる",
			"4": "複雑な業務内容を理解できる",
			"5": "ネイティブレベルでコミュニケーションができる",
		},
	},
	{
		Name: "機械操作", Category: "技術", Description: strPtr("製造機械の操作技術"),
		Levels: map[string]string{
			"1": "基本的な操作ができる",
			"2": "標準的な作業ができる",
			"3": "複雑な操作ができる",
			"4": "機械の調整・メンテナンスができる",
			"5": "新しい機械の習得・指導ができる",
		},
	},
	{
		Name: "品質管理", Category: "品質", Description: strPtr("品質チェック・管理技術"),
		Levels: map[string]string{
			"1": "基本的な品質チェックができる",
			"2": "標準的な品質基準を理解している",
			"3": "品質問題の識別ができる",
			"4": "品質改善提案ができる",
			"5": "品質管理システムの構築ができる",
		},
	},
	{
		Name: "安全作業", Category: "安全", Description: strPtr("安全作業の知識と実践"),
		Levels: map[string]string{
			"1": "基本的な安全ルールを理解している",
			"2": "安全装備の正しい使用ができる",
			"3": "危険予知ができる",
			"4": "安全指導ができる",
			"5": "安全管理システムの構築ができる",
		},
	},
	{
		Name: "チームワーク", Category: "ソフトスキル", Description: strPtr("チームでの協働能力"),
		Levels: map[string]string{
			"1": "指示に従って作業ができる",
			"2": "チームメンバーと協力できる",
			"3": "積極的にチームに貢献できる",
			"4": "チームのリーダーシップを発揮できる",
			"5": "チーム全体の能力向上に貢献できる",
		},
	},
}

// CreateDefaultData creates the default accounts and skill masters if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	return createDefaults(ctx, appRepos.NewUserRepository(dbPool), appRepos.NewSkillRepository(dbPool), lgr)
}

func createDefaults(ctx context.Context, users userCreator, skills skillCreator, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (users/skills)...")
	var finalErr error // collected so one failure does not stop the rest

	for _, u := range defaultUsers {
		hashed, err := auth.HashPassword(u.password)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			Email:      u.email,
			Password:   hashed,
			Name:       u.name,
			Role:       u.role,
			Department: strPtr(u.department),
			IsActive:   true,
		}
		switch err := users.CreateUser(ctx, user); {
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			lgr.Debug().Str("email", u.email).Msg("Default user already exists, skipping")
		case err != nil:
			lgr.Error().Err(err).Str("email", u.email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
		default:
			lgr.Info().Str("email", u.email).Int64("userID", user.ID).Msg("Default user created")
		}
	}

	for i := range defaultSkills {
		skill := defaultSkills[i]
		skill.IsActive = true
		switch err := skills.CreateSkill(ctx, &skill); {
		case errors.Is(err, apperrors.ErrSkillAlreadyExists):
			lgr.Debug().Str("skill", skill.Name).Msg("Default skill already exists, skipping")
		case err != nil:
			lgr.Error().Err(err).Str("skill", skill.Name).Msg("Error creating default skill")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
