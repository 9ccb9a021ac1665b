package accounting

import (
	"fmt"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NatureBalance computes an account balance from its debit and credit totals
// following the sign convention for its nature:
// ASSET/EXPENSE (debit-normal)            -> debit - credit
// LIABILITY/EQUITY/REVENUE (credit-normal) -> credit - debit
func NatureBalance(nature domain.AccountNature, debit, credit decimal.Decimal) decimal.Decimal {
	if nature.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// LineTotals sums the debit and credit columns of a line set.
func LineTotals(lines []domain.JournalLine) (debit, credit, vat decimal.Decimal) {
	debit, credit, vat = decimal.Zero, decimal.Zero, decimal.Zero
	for _, line := range lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
		vat = vat.Add(line.VATAmount)
	}
	return debit, credit, vat
}

// ValidateLines checks the structural line invariants: at least one line,
// non-negative amounts, and exactly one side carrying the line's value.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("entry must have at least one line")
	}
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line amounts must be non-negative for account %s", line.AccountID)
		}
		if line.Debit.IsZero() == line.Credit.IsZero() {
			return fmt.Errorf("line for account %s must carry either a debit or a credit", line.AccountID)
		}
	}
	return nil
}

// CheckBalanced verifies sum(debit) == sum(credit) within the given
// tolerance. A zero tolerance demands exact equality.
func CheckBalanced(lines []domain.JournalLine, tolerance decimal.Decimal) error {
	debit, credit, _ := LineTotals(lines)
	diff := debit.Sub(credit).Abs()
	if diff.GreaterThan(tolerance) {
		return fmt.Errorf("debits sum is %s and credits sum is %s", debit.String(), credit.String())
	}
	return nil
}
