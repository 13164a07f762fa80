package techtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speclab-backend/models/certification"
	"speclab-backend/testutil"
)

func cert(id uint, name, level string) *certification.Certification {
	c := testutil.NewCertification(name, name, "IT", "소프트웨어", level)
	c.ID = id
	return c
}

func TestAssignRowsAndColumnsPerLevel(t *testing.T) {
	certs := []*certification.Certification{
		cert(1, "정보처리기사", certification.LevelEngineer),
		cert(2, "정보처리기술사", certification.LevelTechnician),
		cert(3, "빅데이터분석기사", certification.LevelEngineer),
		cert(4, "정보처리산업기사", certification.LevelIndustrialEngineer),
		cert(5, "전기기사", certification.LevelEngineer),
		cert(6, "전기기능사", certification.LevelCraftsman),
	}

	got := Assign(certs)

	require.Len(t, got, len(certs))
	want := []Position{
		{X: 0, Y: 150},
		{X: 0, Y: 0},
		{X: 220, Y: 150},
		{X: 0, Y: 300},
		{X: 440, Y: 150},
		{X: 0, Y: 450},
	}
	for i, p := range got {
		assert.Equal(t, want[i], p.Position, certs[i].Name)
	}
}

func TestAssignUnknownLevelsShareFallbackRow(t *testing.T) {
	certs := []*certification.Certification{
		cert(1, "ADsP", ""),
		cert(2, "SQLD", "민간"),
		cert(3, "전기기사", certification.LevelEngineer),
		cert(4, "TOEIC", "어학"),
	}

	got := Assign(certs)

	assert.Equal(t, Position{X: 0, Y: 600}, got[0].Position)
	assert.Equal(t, Position{X: 220, Y: 600}, got[1].Position)
	assert.Equal(t, Position{X: 0, Y: 150}, got[2].Position)
	assert.Equal(t, Position{X: 440, Y: 600}, got[3].Position)
	for _, i := range []int{0, 1, 3} {
		assert.Equal(t, "#f3f4f6", got[i].Level.Background)
		assert.Equal(t, "#9ca3af", got[i].Level.Border)
	}
}

func TestAssignCountsAndRanksForEveryBucket(t *testing.T) {
	levels := []string{
		certification.LevelTechnician, certification.LevelEngineer, "",
		certification.LevelCraftsman, certification.LevelEngineer, "기타등급",
		certification.LevelIndustrialEngineer, certification.LevelEngineer,
	}
	var certs []*certification.Certification
	for i, l := range levels {
		certs = append(certs, cert(uint(i+1), "c", l))
	}

	got := Assign(certs)
	require.Len(t, got, len(certs))

	rank := map[int]int{}
	for i, c := range certs {
		info, _ := certification.LookupLevel(c.Level)
		assert.Equal(t, info.Y, got[i].Position.Y)
		assert.Equal(t, ColumnWidth*rank[info.Y], got[i].Position.X)
		rank[info.Y]++
	}
}

func TestAssignEmpty(t *testing.T) {
	assert.Empty(t, Assign(nil))
}
