package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-gaming/geodirectory/internal/domain"
)

func region(name string, level int, parent *domain.Region) domain.Region {
	r := domain.Region{ID: uuid.New(), Name: name, Level: level}
	if parent != nil {
		r.ParentID = uuid.NullUUID{UUID: parent.ID, Valid: true}
	}
	return r
}

func names(nodes []*domain.RegionNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

// sampleTree is NYC > {Manhattan > {SoHo > {Cast Iron}, Harlem}, Brooklyn}.
func sampleTree() []domain.Region {
	nyc := region("New York", 0, nil)
	manhattan := region("Manhattan", 1, &nyc)
	brooklyn := region("Brooklyn", 1, &nyc)
	soho := region("SoHo", 2, &manhattan)
	harlem := region("Harlem", 2, &manhattan)
	castIron := region("Cast Iron", 3, &soho)
	return []domain.Region{soho, nyc, castIron, brooklyn, harlem, manhattan}
}

func TestBuildRegionTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildRegionTree(nil, nil, 0))
	assert.Empty(t, BuildRegionTree([]domain.Region{}, nil, 3))
}

func TestBuildRegionTreeUnrelatedRoots(t *testing.T) {
	list := []domain.Region{region("Denver", 0, nil), region("Austin", 0, nil), region("Boston", 0, nil)}

	forest := BuildRegionTree(list, nil, 0)
	require.Len(t, forest, 3)
	assert.Equal(t, []string{"Austin", "Boston", "Denver"}, names(forest))
	for _, n := range forest {
		assert.Empty(t, n.Children)
	}
}

func TestBuildRegionTreeNested(t *testing.T) {
	forest := BuildRegionTree(sampleTree(), nil, 0)

	require.Len(t, forest, 1)
	nyc := forest[0]
	assert.Equal(t, "New York", nyc.Name)
	require.Equal(t, []string{"Brooklyn", "Manhattan"}, names(nyc.Children))
	assert.Empty(t, nyc.Children[0].Children)

	manhattan := nyc.Children[1]
	require.Equal(t, []string{"Harlem", "SoHo"}, names(manhattan.Children))
	assert.Equal(t, []string{"Cast Iron"}, names(manhattan.Children[1].Children))
}

func TestBuildRegionTreeFlattenAll(t *testing.T) {
	list := sampleTree()

	forest := BuildRegionTree(list, nil, 1)
	require.Len(t, forest, len(list))
	assert.Equal(t, []string{"Brooklyn", "Cast Iron", "Harlem", "Manhattan", "New York", "SoHo"}, names(forest))
	for _, n := range forest {
		assert.Nil(t, n.Children)
	}
}

func TestBuildRegionTreeFlattenAtDepth(t *testing.T) {
	forest := BuildRegionTree(sampleTree(), nil, 2)

	require.Len(t, forest, 1)
	// everything below the city lands on the second level
	assert.Equal(t, []string{"Brooklyn", "Cast Iron", "Harlem", "Manhattan", "SoHo"}, names(forest[0].Children))
	for _, n := range forest[0].Children {
		assert.Nil(t, n.Children)
	}
}

func TestBuildRegionTreeUnderParent(t *testing.T) {
	list := sampleTree()
	var manhattan domain.Region
	for _, r := range list {
		if r.Name == "Manhattan" {
			manhattan = r
		}
	}

	forest := BuildRegionTree(list, &manhattan.ID, 0)
	require.Equal(t, []string{"Harlem", "SoHo"}, names(forest))
	assert.Equal(t, []string{"Cast Iron"}, names(forest[1].Children))

	flat := BuildRegionTree(list, &manhattan.ID, 1)
	assert.Equal(t, []string{"Cast Iron", "Harlem", "SoHo"}, names(flat))
}

func TestBuildRegionTreeParentWithoutChildren(t *testing.T) {
	nyc := region("New York", 0, nil)
	forest := BuildRegionTree([]domain.Region{nyc}, &nyc.ID, 0)
	assert.Empty(t, forest)
}

func TestBuildRegionTreeOrphans(t *testing.T) {
	nyc := region("New York", 0, nil)
	deleted := region("Queens", 1, &nyc)
	astoria := region("Astoria", 2, &deleted)
	ditmars := region("Ditmars", 3, &astoria)

	forest := BuildRegionTree([]domain.Region{nyc, astoria, ditmars}, nil, 0)
	require.Equal(t, []string{"Astoria", "New York"}, names(forest))
	assert.Equal(t, []string{"Ditmars"}, names(forest[0].Children))
}

func TestBuildRegionTreeOrphansUnderParent(t *testing.T) {
	nyc := region("New York", 0, nil)
	manhattan := region("Manhattan", 1, &nyc)
	soho := region("SoHo", 2, &manhattan)
	harlem := region("Harlem", 2, &manhattan)
	castIron := region("Cast Iron", 3, &soho)
	greene := region("Greene Street", 4, &castIron)
	list := []domain.Region{nyc, harlem, castIron, greene}

	forest := BuildRegionTree(list, &manhattan.ID, 0)
	require.Equal(t, []string{"Cast Iron", "Harlem"}, names(forest))
	assert.Equal(t, []string{"Greene Street"}, names(forest[0].Children))

	flat := BuildRegionTree(list, &manhattan.ID, 1)
	assert.Equal(t, []string{"Cast Iron", "Greene Street", "Harlem"}, names(flat))
}

func TestBuildRegionTreeDeduplicates(t *testing.T) {
	list := sampleTree()
	list = append(list, list...)

	forest := BuildRegionTree(list, nil, 1)
	assert.Len(t, forest, 6)
}

func TestBuildRegionTreeCycles(t *testing.T) {
	a := region("A", 1, nil)
	b := region("B", 1, &a)
	a.ParentID = uuid.NullUUID{UUID: b.ID, Valid: true}

	forest := BuildRegionTree([]domain.Region{b, a}, nil, 0)
	require.Equal(t, []string{"A"}, names(forest))
	assert.Equal(t, []string{"B"}, names(forest[0].Children))
	assert.Empty(t, forest[0].Children[0].Children)
}
