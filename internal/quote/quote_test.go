package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuote() *QuoteData {
	q := NewDefault("")
	q.QuoteID = "RB-2024-001"
	q.Customer = Customer{Name: "Ada", Email: "ada@example.com"}
	q.SetItems([]LineItem{
		{ItemID: NewItemID(), Width: Int(1200), Height: Int(1500), FabricType: String("B2"), Fabric: "Linen", LinePrice: Float(210.5)},
		{ItemID: NewItemID(), Width: Int(900), Height: Int(1100), FabricType: String("B3"), Chain: Int(800), Winder: WinderHeavyDuty},
		NewItem(),
	})
	q.AddLFRows(0)
	q.F1Snapshot.Set("discountPercentage", 10)
	return q
}

func TestNewDefault(t *testing.T) {
	t.Parallel()

	q := NewDefault("")
	require.Equal(t, DefaultProduct, q.CurrentProduct)
	require.Len(t, q.Items(), 1)
	assert.True(t, q.Items()[0].IsEmpty())
	assert.NotEmpty(t, q.Items()[0].ItemID)
	assert.NotNil(t, q.F1Snapshot)
	assert.False(t, q.HasData())
}

func TestNewItemIDsAreUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		id := NewItemID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestHasData(t *testing.T) {
	t.Parallel()

	q := NewDefault("")
	assert.False(t, q.HasData())

	q.Items()[0].Height = Int(1000)
	assert.True(t, q.HasData())

	q.SetItems([]LineItem{NewItem(), NewItem()})
	assert.True(t, q.HasData())
}

func TestLFSetSemantics(t *testing.T) {
	t.Parallel()

	q := NewDefault("")
	q.SetItems([]LineItem{NewItem(), NewItem(), NewItem(), NewItem(), NewItem()})

	q.AddLFRows(4, 2)
	q.AddLFRows(2, 4)
	assert.Equal(t, []int{2, 4}, q.LFRows())
	assert.True(t, q.IsLF(2))
	assert.False(t, q.IsLF(3))

	q.RemoveLFRows(3, 9)
	assert.Equal(t, []int{2, 4}, q.LFRows())

	q.RemoveLFRows(4)
	assert.Equal(t, []int{2}, q.LFRows())
}

func TestSetItemsPrunesStaleLFRows(t *testing.T) {
	t.Parallel()

	q := NewDefault("")
	q.SetItems([]LineItem{NewItem(), NewItem(), NewItem()})
	q.AddLFRows(0, 2)

	q.SetItems([]LineItem{NewItem(), NewItem()})
	assert.Equal(t, []int{0}, q.LFRows())
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := sampleQuote()
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	*cp.Items()[0].Width = 1
	cp.Items()[0].Fabric = "changed"
	*cp.Items()[0].FabricType = "B4"
	*cp.F1Snapshot.DiscountPercentage = 50
	cp.AddLFRows(1)
	cp.Customer.Name = "Grace"

	assert.Equal(t, 1200, *orig.Items()[0].Width)
	assert.Equal(t, "Linen", orig.Items()[0].Fabric)
	assert.Equal(t, "B2", orig.Items()[0].Type())
	v, _ := orig.F1Snapshot.Get("discountPercentage")
	assert.Equal(t, 10.0, v)
	assert.Equal(t, []int{0}, orig.LFRows())
	assert.Equal(t, "Ada", orig.Customer.Name)
}

func TestCloneNilSnapshot(t *testing.T) {
	t.Parallel()

	q := sampleQuote()
	q.F1Snapshot = nil
	assert.Nil(t, q.Clone().F1Snapshot)
}

func TestJSONWireNames(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(sampleQuote())
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	for _, key := range []string{"currentProduct", "products", "uiMetadata", "f1Snapshot", "quoteId", "customer"} {
		assert.Contains(t, generic, key)
	}
	snap := generic["f1Snapshot"].(map[string]any)
	assert.Contains(t, snap, "discountPercentage")
	assert.Contains(t, snap, "remote_16ch_qty")
}

func TestSnapshotFieldAccess(t *testing.T) {
	t.Parallel()

	var s Snapshot
	assert.True(t, s.Set("winder_qty", 3))
	assert.False(t, s.Set("unknown", 1))
	v, ok := s.Get("winder_qty")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
	_, ok = s.Get("motor_qty")
	assert.False(t, ok)

	var nilSnap *Snapshot
	_, ok = nilSnap.Get("winder_qty")
	assert.False(t, ok)
}
