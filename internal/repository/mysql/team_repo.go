package mysql

import (
	"context"
	"errors"

	"Team_Social/internal/model"
	"Team_Social/internal/pkg"
	"Team_Social/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const inviteCodeAttempts = 3

type TeamRepository struct {
	DB *gorm.DB

	codes func() (string, error)
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db, codes: pkg.NewInviteCode}
}

func (r *TeamRepository) List(ctx context.Context) ([]model.Team, error) {
	var list []model.Team
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*model.Team, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *TeamRepository) FindByHandle(ctx context.Context, handle string) (*model.Team, error) {
	return r.findOne(ctx, "handle = ?", handle)
}

func (r *TeamRepository) FindByInviteCode(ctx context.Context, code string) (*model.Team, error) {
	return r.findOne(ctx, "invite_code = ?", code)
}

func (r *TeamRepository) findOne(ctx context.Context, cond string, arg string) (*model.Team, error) {
	var team model.Team
	if err := r.DB.WithContext(ctx).Where(cond, arg).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// CreateWithProfile 同一事务内建团队并把创建者加入，任一步失败整体回滚
func (r *TeamRepository) CreateWithProfile(ctx context.Context, userID, name, handle string, fullName *string) (*model.Team, error) {
	var team *model.Team
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := r.codes()
		if err != nil {
			return err
		}
		t := &model.Team{Name: name, Handle: handle, InviteCode: code}
		if err := tx.Create(t).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return repository.ErrDuplicateHandle
			}
			return err
		}
		if err := createProfile(tx, userID, t.ID, fullName); err != nil {
			return err
		}
		team = t
		return insertOutbox(tx, model.EventTeamCreated, t.ID, map[string]any{
			"team_id": t.ID,
			"handle":  t.Handle,
			"user_id": userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// JoinWithProfile 在事务内锁住团队行再校验邀请码，防止校验与轮换码之间的竞争
func (r *TeamRepository) JoinWithProfile(ctx context.Context, userID, teamID, code string, fullName *string) (*model.Team, error) {
	var team model.Team
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("id = ?", teamID).
			First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrInvalidInviteCode
			}
			return err
		}
		if team.InviteCode != code {
			return repository.ErrInvalidInviteCode
		}
		if err := createProfile(tx, userID, team.ID, fullName); err != nil {
			return err
		}
		return insertOutbox(tx, model.EventMemberJoined, team.ID, map[string]any{
			"team_id": team.ID,
			"user_id": userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func createProfile(tx *gorm.DB, userID, teamID string, fullName *string) error {
	err := tx.Create(&model.Profile{ID: userID, TeamID: teamID, FullName: fullName}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicateMembership
	}
	return err
}

// RegenerateInviteCode 撞码时重新生成，最多 inviteCodeAttempts 次
func (r *TeamRepository) RegenerateInviteCode(ctx context.Context, teamID string) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := r.codes()
		if err != nil {
			return "", err
		}
		res := r.DB.WithContext(ctx).Model(&model.Team{}).
			Where("id = ?", teamID).
			Update("invite_code", code)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				continue
			}
			return "", res.Error
		}
		if res.RowsAffected == 0 {
			return "", repository.ErrNotFound
		}
		return code, nil
	}
	return "", repository.ErrInviteCodeExhausted
}

func (r *TeamRepository) CountMembers(ctx context.Context, teamID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("team_id = ?", teamID).
		Count(&n).Error
	return n, err
}
