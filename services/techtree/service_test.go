package techtree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speclab-backend/metrics"
	"speclab-backend/models/certification"
	"speclab-backend/testutil"
)

func newService(t *testing.T) (*Service, func(c *certification.Certification) *certification.Certification) {
	db := testutil.DB(t)
	repos := testutil.Repos(t, db)
	svc := NewService(repos.Certifications, metrics.New(), testutil.Logger(t))
	return svc, func(c *certification.Certification) *certification.Certification {
		return testutil.CreateCertification(t, db, c)
	}
}

func TestServiceGraphScenario(t *testing.T) {
	db := testutil.DB(t)
	repos := testutil.Repos(t, db)
	svc := NewService(repos.Certifications, nil, testutil.Logger(t))

	a := testutil.CreateCertification(t, db, testutil.NewCertification("A", "A", "IT", "sw", certification.LevelEngineer))
	b := testutil.CreateCertification(t, db, testutil.NewCertification("B", "B", "IT", "sw", certification.LevelEngineer))
	c := testutil.CreateCertification(t, db, testutil.NewCertification("C", "C", "IT", "sw", certification.LevelTechnician))
	testutil.CreateEdge(t, db, a.ID, c.ID)
	testutil.CreateEdge(t, db, b.ID, c.ID)

	data, err := svc.Graph(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, data.Nodes, 3)
	byLabel := map[string]Node{}
	for _, n := range data.Nodes {
		byLabel[n.Data.Label] = n
	}
	assert.Equal(t, 150, byLabel["A"].Position.Y)
	assert.Equal(t, 150, byLabel["B"].Position.Y)
	assert.ElementsMatch(t, []int{0, 220}, []int{byLabel["A"].Position.X, byLabel["B"].Position.X})
	assert.Equal(t, Position{X: 0, Y: 0}, byLabel["C"].Position)

	ids := []string{data.Edges[0].ID, data.Edges[1].ID}
	assert.ElementsMatch(t, []string{edgeID(a.ID, c.ID), edgeID(b.ID, c.ID)}, ids)
}

func TestServiceGraphCategoryFilterKeepsForeignSources(t *testing.T) {
	db := testutil.DB(t)
	repos := testutil.Repos(t, db)
	svc := NewService(repos.Certifications, nil, testutil.Logger(t))

	adsp := testutil.CreateCertification(t, db, testutil.NewCertification("데이터분석준전문가", "ADsP", "데이터", "분석", certification.LevelCraftsman))
	bigdata := testutil.CreateCertification(t, db, testutil.NewCertification("빅데이터분석기사", "1350", "IT", "데이터", certification.LevelEngineer))
	elec := testutil.CreateCertification(t, db, testutil.NewCertification("전기기사", "2011", "전기", "전기설비", certification.LevelEngineer))
	testutil.CreateEdge(t, db, adsp.ID, bigdata.ID)
	testutil.CreateEdge(t, db, bigdata.ID, elec.ID)

	data, err := svc.Graph(context.Background(), "IT")
	require.NoError(t, err)

	require.Len(t, data.Nodes, 1)
	assert.Equal(t, "빅데이터분석기사", data.Nodes[0].Data.Label)
	require.Len(t, data.Edges, 1)
	assert.Equal(t, edgeID(adsp.ID, bigdata.ID), data.Edges[0].ID)
}

func TestServiceGraphSkipsInactiveTargets(t *testing.T) {
	db := testutil.DB(t)
	repos := testutil.Repos(t, db)
	svc := NewService(repos.Certifications, nil, testutil.Logger(t))

	active := testutil.CreateCertification(t, db, testutil.NewCertification("정보처리산업기사", "1322", "IT", "sw", certification.LevelIndustrialEngineer))
	retired := testutil.NewCertification("정보처리기사", "1321", "IT", "sw", certification.LevelEngineer)
	testutil.CreateCertification(t, db, retired)
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)
	testutil.CreateEdge(t, db, active.ID, retired.ID)

	data, err := svc.Graph(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, data.Nodes, 1)
	assert.Empty(t, data.Edges)
}

func TestServiceGraphEmptyCategory(t *testing.T) {
	svc, create := newService(t)
	create(testutil.NewCertification("전기기사", "2011", "전기", "전기설비", certification.LevelEngineer))

	data, err := svc.Graph(context.Background(), "우주항공")
	require.NoError(t, err)
	assert.NotNil(t, data.Nodes)
	assert.NotNil(t, data.Edges)
	assert.Empty(t, data.Nodes)
	assert.Empty(t, data.Edges)
}

func TestServiceCategories(t *testing.T) {
	svc, create := newService(t)
	create(testutil.NewCertification("정보처리기사", "1321", "IT", "소프트웨어", certification.LevelEngineer))
	create(testutil.NewCertification("정보처리산업기사", "1322", "IT", "소프트웨어", certification.LevelIndustrialEngineer))
	create(testutil.NewCertification("정보보안기사", "1351", "IT", "보안", certification.LevelEngineer))
	create(testutil.NewCertification("무분류", "X1", "", "", ""))

	got, err := svc.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []CategoryTree{
		{Main: "IT", Subs: []SubCount{{"보안", 1}, {"소프트웨어", 2}}, Total: 3},
		{Main: "기타", Subs: []SubCount{{"기타", 1}}, Total: 1},
	}, got)
}

func TestServiceGraphOtherCategoryMatchesUncategorised(t *testing.T) {
	svc, create := newService(t)
	create(testutil.NewCertification("정보처리기사", "1321", "IT", "소프트웨어", certification.LevelEngineer))
	create(testutil.NewCertification("무분류", "X1", "", "", ""))
	create(testutil.NewCertification("공백분류", "X2", "  ", "", certification.LevelCraftsman))
	create(testutil.NewCertification("기타자격", "X3", OtherCategory, "", certification.LevelCraftsman))

	tree, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, OtherCategory, tree[1].Main)

	data, err := svc.Graph(context.Background(), OtherCategory)
	require.NoError(t, err)
	assert.Len(t, data.Nodes, tree[1].Total)
	assert.Len(t, data.Nodes, 3)

	data, err = svc.Graph(context.Background(), "IT")
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 1)
}

func edgeID(src, dst uint) string {
	return wireEdge(Edge{Source: src, Target: dst}).ID
}
