package accounting_test

import (
	"testing"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/finbooks/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNatureBalance(t *testing.T) {
	debit := decimal.NewFromInt(1500)
	credit := decimal.NewFromInt(200)

	assert.True(t, decimal.NewFromInt(1300).Equal(accounting.NatureBalance(domain.Asset, debit, credit)))
	assert.True(t, decimal.NewFromInt(1300).Equal(accounting.NatureBalance(domain.Expense, debit, credit)))

	debit = decimal.NewFromInt(500)
	credit = decimal.NewFromInt(1000)
	assert.True(t, decimal.NewFromInt(500).Equal(accounting.NatureBalance(domain.Liability, debit, credit)))
	assert.True(t, decimal.NewFromInt(500).Equal(accounting.NatureBalance(domain.Equity, debit, credit)))
	assert.True(t, decimal.NewFromInt(500).Equal(accounting.NatureBalance(domain.Revenue, debit, credit)))
}

func TestLineTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100), VATAmount: decimal.NewFromInt(20)},
		{AccountID: "b", Credit: decimal.NewFromInt(80)},
		{AccountID: "c", Credit: decimal.NewFromInt(20)},
	}

	debit, credit, vat := accounting.LineTotals(lines)
	assert.True(t, decimal.NewFromInt(100).Equal(debit))
	assert.True(t, decimal.NewFromInt(100).Equal(credit))
	assert.True(t, decimal.NewFromInt(20).Equal(vat))
}

func TestValidateLines(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		require.Error(t, accounting.ValidateLines(nil))
	})

	t.Run("negative amount", func(t *testing.T) {
		lines := []domain.JournalLine{
			{AccountID: "a", Debit: decimal.NewFromInt(-5)},
		}
		require.Error(t, accounting.ValidateLines(lines))
	})

	t.Run("both sides set", func(t *testing.T) {
		lines := []domain.JournalLine{
			{AccountID: "a", Debit: decimal.NewFromInt(5), Credit: decimal.NewFromInt(5)},
		}
		require.Error(t, accounting.ValidateLines(lines))
	})

	t.Run("valid", func(t *testing.T) {
		lines := []domain.JournalLine{
			{AccountID: "a", Debit: decimal.NewFromInt(5)},
			{AccountID: "b", Credit: decimal.NewFromInt(5)},
		}
		require.NoError(t, accounting.ValidateLines(lines))
	})
}

func TestCheckBalanced(t *testing.T) {
	balanced := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(1000)},
		{AccountID: "b", Credit: decimal.NewFromInt(1000)},
	}
	require.NoError(t, accounting.CheckBalanced(balanced, decimal.Zero))

	skewed := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.RequireFromString("100.001")},
		{AccountID: "b", Credit: decimal.NewFromInt(100)},
	}
	require.Error(t, accounting.CheckBalanced(skewed, decimal.Zero))
	// Within the ingestion tolerance the same residue is accepted.
	require.NoError(t, accounting.CheckBalanced(skewed, decimal.RequireFromString("0.001")))
}
