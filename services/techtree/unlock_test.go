package techtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speclab-backend/models/certification"
)

func TestNextSteps(t *testing.T) {
	certs := []*certification.Certification{
		cert(1, "전기기능사", certification.LevelCraftsman),
		cert(2, "전기산업기사", certification.LevelIndustrialEngineer),
		cert(3, "전기기사", certification.LevelEngineer),
		cert(4, "전기기술사", certification.LevelTechnician),
		cert(5, "위험물산업기사", certification.LevelIndustrialEngineer),
		cert(6, "위험물기능사", certification.LevelCraftsman),
	}
	edges := []*certification.Prerequisite{
		{PrerequisiteID: 1, CertificationID: 2},
		{PrerequisiteID: 2, CertificationID: 3},
		{PrerequisiteID: 3, CertificationID: 4},
		{PrerequisiteID: 6, CertificationID: 5},
		{PrerequisiteID: 1, CertificationID: 5},
	}

	got := NextSteps(certs, edges, map[uint]bool{1: true}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, []uint{1}, got[0].UnlockedBy)

	got = NextSteps(certs, edges, map[uint]bool{1: true, 2: true, 6: true}, nil)
	require.Len(t, got, 2)
	assert.Equal(t, uint(5), got[0].ID, "lower level first")
	assert.Equal(t, uint(3), got[1].ID)

	got = NextSteps(certs, edges, map[uint]bool{1: true, 2: true, 6: true}, map[uint]bool{5: true})
	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)

	assert.Empty(t, NextSteps(certs, edges, nil, nil))
	assert.NotNil(t, NextSteps(nil, nil, nil, nil))
}
