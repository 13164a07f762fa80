package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"speclab-backend/models/certification"
	"speclab-backend/models/users"
	"speclab-backend/repository"
	"speclab-backend/testutil"
)

func TestDuplicateProgressRowsAreReported(t *testing.T) {
	db := testutil.DB(t)
	repos := testutil.Repos(t, db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "user@example.com", false)
	c := testutil.CreateCertification(t, db, testutil.NewCertification("전기기사", "1150", "전기", "전기", certification.LevelEngineer))

	require.NoError(t, repos.Progress.CreateCertification(ctx, nil, &users.UserCertification{UserID: u.ID, CertificationID: c.ID}))
	err := repos.Progress.CreateCertification(ctx, nil, &users.UserCertification{UserID: u.ID, CertificationID: c.ID})
	require.Error(t, err)
	assert.True(t, repository.IsDuplicate(err), "got %v", err)

	require.NoError(t, repos.Progress.CreateGoal(ctx, nil, &users.UserGoal{UserID: u.ID, CertificationID: c.ID, Status: users.GoalPending}))
	err = repos.Progress.CreateGoal(ctx, nil, &users.UserGoal{UserID: u.ID, CertificationID: c.ID, Status: users.GoalPending})
	require.Error(t, err)
	assert.True(t, repository.IsDuplicate(err), "got %v", err)

	assert.False(t, repository.IsDuplicate(nil))
	assert.False(t, repository.IsDuplicate(gorm.ErrRecordNotFound))
}
