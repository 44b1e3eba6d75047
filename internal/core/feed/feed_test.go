package feed_test

import (
	"testing"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedState() domain.Snapshot {
	s := domain.DefaultSnapshot()
	s.Income = []domain.Record{{ID: "inc-1", Kind: domain.KindIncome, Category: "Salary", Amount: 3000, Tags: []string{"work"}}}
	s.Expenses = []domain.Record{{ID: "exp-1", Kind: domain.KindExpense, Category: "Groceries", Description: "Weekly shop", Amount: 200, Tags: []string{"food", "weekly"}}}
	s.Assets = []domain.Record{
		{ID: "ast-1", Kind: domain.KindAsset, RecordType: "savings", Amount: 150},
		{ID: "ast-2", Kind: domain.KindAsset, Amount: 9000},
	}
	s.AssetHoldings = []domain.Record{{ID: "hold-1", Kind: domain.KindAssetHolding, AssetMarketValue: 250000, AssetValueOwed: 200000}}
	s.CreditCards = []domain.Record{{ID: "card-1", Kind: domain.KindCreditCard, CurrentBalance: 800, MinimumPayment: 35}}
	s.Loans = []domain.Record{{ID: "loan-1", Kind: domain.KindLoan, Amount: 7000, MonthlyPayment: 310, MinimumPayment: 300}}
	s.Notes = []domain.Record{{ID: "note-1", Kind: domain.KindNote, Notes: "Call the bank"}}
	return s
}

func TestBuildUnifiedFeed_SignConvention(t *testing.T) {
	rows := feed.BuildUnifiedFeed(feedState())
	require.Len(t, rows, 8)

	want := map[string]float64{
		"inc-1":  3000,
		"exp-1":  -200,
		"ast-1":  -150,
		"ast-2":  0,
		"hold-1": 0,
		"card-1": -35,
		"loan-1": -310,
		"note-1": 0,
	}
	for _, r := range rows {
		assert.Equal(t, want[r.ID], r.SignedAmount, r.ID)
	}
	assert.Equal(t, domain.CollectionIncome, rows[0].SourceCollectionName)
	assert.Equal(t, domain.CollectionNotes, rows[len(rows)-1].SourceCollectionName)
}

func TestBuildSortedAndFilteredCollection_Search(t *testing.T) {
	rows := feed.BuildUnifiedFeed(feedState())

	got := feed.BuildSortedAndFilteredCollection(rows, feed.Query{Search: "WEEKLY"})
	require.Len(t, got, 1)
	assert.Equal(t, "exp-1", got[0].ID)

	got = feed.BuildSortedAndFilteredCollection(rows, feed.Query{Search: "creditCards"})
	require.Len(t, got, 1)
	assert.Equal(t, "card-1", got[0].ID)
}

func TestBuildSortedAndFilteredCollection_AmountRangeAndTags(t *testing.T) {
	rows := feed.BuildUnifiedFeed(feedState())
	lo, hi := 150.0, 3000.0

	got := feed.BuildSortedAndFilteredCollection(rows, feed.Query{MinAmount: &lo, MaxAmount: &hi})
	var gotIDs []string
	for _, r := range got {
		gotIDs = append(gotIDs, r.ID)
	}
	assert.ElementsMatch(t, []string{"inc-1", "exp-1", "ast-1"}, gotIDs, "bounds are inclusive; rows without amount drop out")

	got = feed.BuildSortedAndFilteredCollection(rows, feed.Query{Tags: []string{"Food", "travel"}})
	require.Len(t, got, 1)
	assert.Equal(t, "exp-1", got[0].ID)

	neg := -100.0
	got = feed.BuildSortedAndFilteredCollection(rows, feed.Query{AmountField: "signedAmount", MaxAmount: &neg})
	assert.Len(t, got, 3)
}

func TestBuildSortedAndFilteredCollection_MissingSortsLast(t *testing.T) {
	rows := []domain.Record{
		{ID: "note", Kind: domain.KindNote},
		{ID: "big", Kind: domain.KindExpense, Amount: 500},
		{ID: "small", Kind: domain.KindExpense, Amount: 5},
	}

	for _, dir := range []feed.SortDirection{feed.Ascending, feed.Descending} {
		t.Run(string(dir), func(t *testing.T) {
			got := feed.BuildSortedAndFilteredCollection(rows, feed.Query{SortField: "amount", SortDirection: dir})
			require.Len(t, got, 3)
			assert.Equal(t, "note", got[2].ID)
			if dir == feed.Ascending {
				assert.Equal(t, "small", got[0].ID)
			} else {
				assert.Equal(t, "big", got[0].ID)
			}
		})
	}
	assert.Equal(t, "note", rows[0].ID, "input order is untouched")
}

func TestBuildSortedAndFilteredCollection_TextSortIsStable(t *testing.T) {
	rows := []domain.Record{
		{ID: "1", Kind: domain.KindExpense, Category: "b"},
		{ID: "2", Kind: domain.KindExpense, Category: "A"},
		{ID: "3", Kind: domain.KindExpense, Category: "B"},
	}
	got := feed.BuildSortedAndFilteredCollection(rows, feed.Query{SortField: "category"})
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)
	assert.Equal(t, "3", got[2].ID)
}
