package kegg

import (
	"context"
	"testing"

	"github.com/hupe1980/traittab/blobstore"
	"github.com/stretchr/testify/require"
)

const koMetadata = "KO\tdescription\tpathways\n" +
	"K00001\talcohol dehydrogenase\tMetabolism;Carbohydrate;Glycolysis|Metabolism;Energy;Fermentation\n" +
	"K00002\tsomething else\tMetabolism;Carbohydrate;Glycolysis\n" +
	"K00003\tshallow\tMetabolism\n"

func koStore(t *testing.T) blobstore.Store {
	t.Helper()
	store := blobstore.NewMemStore()
	store.Put("ko_metadata.tab", []byte(koMetadata))
	return store
}

func TestKOsByFunction_PathwayLevel(t *testing.T) {
	data, err := KOsByFunction(context.Background(), koStore(t), "ko_metadata.tab", LevelPathway)
	require.NoError(t, err)

	require.Equal(t, []string{"K00001", "K00002"}, data["Metabolism;Carbohydrate;Glycolysis"])
	require.Equal(t, []string{"K00001"}, data["Metabolism;Energy;Fermentation"])

	// K00003 has no level-3 pathway and is skipped.
	require.Len(t, data, 2)
}

func TestKOsByFunction_TopLevel(t *testing.T) {
	data, err := KOsByFunction(context.Background(), koStore(t), "ko_metadata.tab", LevelTop)
	require.NoError(t, err)

	// All three KOs share the top level; K00001 appears once per pathway.
	require.Equal(t, []string{"K00001", "K00001", "K00002", "K00003"}, data["Metabolism"])
}

func TestKOsByFunction_UnknownLevel(t *testing.T) {
	for _, level := range []int{0, 4, -1} {
		_, err := KOsByFunction(context.Background(), koStore(t), "ko_metadata.tab", level)
		var ule *UnknownLevelError
		require.ErrorAs(t, err, &ule)
		require.Equal(t, level, ule.Level)
	}
}

func TestKOsByFunction_MissingFile(t *testing.T) {
	_, err := KOsByFunction(context.Background(), blobstore.NewMemStore(), "nope.tab", LevelTop)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestPlantAssociatedKOs(t *testing.T) {
	store := blobstore.NewMemStore()
	store.Put("plant.tab", []byte(
		"lineage\tkos\n"+
			"Bacteria;Proteobacteria\tK00001;K00002\n"+
			"Archaea\t\n"))

	data, err := PlantAssociatedKOs(context.Background(), store, "plant.tab")
	require.NoError(t, err)

	require.Equal(t, []string{"K00001", "K00002"}, data["Bacteria;Proteobacteria"])
	require.Empty(t, data["Archaea"])
	require.Len(t, data, 2)
}
