// Package camt parses ISO 20022 camt.053 bank statements into transactions.
// Only the fields the budgeting core consumes are extracted; everything else
// in the statement is ignored.
package camt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/budgetflow/budgetflow/internal/dates"
)

// Entry is one booked statement line, amount signed (debits negative).
type Entry struct {
	Date     time.Time
	Amount   float64
	Currency string
	Merchant string
	Note     string
}

// Statement is the parsed subset of a camt.053 document.
type Statement struct {
	ID      string
	Account string
	Entries []Entry
}

// Counterparty name lookup paths relative to a statement entry, first match
// wins. Debits name the creditor, credits the debtor; the remittance text
// and the free-form entry info are fallbacks for banks that omit parties.
var merchantPaths = []string{
	"NtryDtls/TxDtls/RltdPties/Cdtr/Nm",
	"NtryDtls/TxDtls/RltdPties/Dbtr/Nm",
	"NtryDtls/TxDtls/RmtInf/Ustrd",
	"AddtlNtryInf",
}

// Parse reads a camt.053 XML document and extracts its booked entries.
func Parse(data []byte) (*Statement, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse camt XML: %w", err)
	}

	stmtElements := doc.FindElements("//BkToCstmrStmt/Stmt")
	if len(stmtElements) == 0 {
		return nil, fmt.Errorf("no statement found in camt document")
	}
	stmtEl := stmtElements[0]

	stmt := &Statement{
		ID:      elementText(stmtEl, "Id"),
		Account: firstText(stmtEl, "Acct/Id/IBAN", "Acct/Id/Othr/Id"),
	}

	for _, ntry := range stmtEl.FindElements("Ntry") {
		entry, err := parseEntry(ntry)
		if err != nil {
			return nil, err
		}
		stmt.Entries = append(stmt.Entries, entry)
	}
	return stmt, nil
}

func parseEntry(ntry *etree.Element) (Entry, error) {
	amtEl := ntry.FindElement("Amt")
	if amtEl == nil {
		return Entry{}, fmt.Errorf("statement entry without amount")
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(amtEl.Text()), 64)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid entry amount %q: %w", amtEl.Text(), err)
	}
	if elementText(ntry, "CdtDbtInd") == "DBIT" {
		amount = -amount
	}

	dateText := firstText(ntry, "BookgDt/Dt", "ValDt/Dt")
	date, err := dates.ParseISODate(dateText)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid entry date %q: %w", dateText, err)
	}

	return Entry{
		Date:     date,
		Amount:   amount,
		Currency: amtEl.SelectAttrValue("Ccy", ""),
		Merchant: firstText(ntry, merchantPaths...),
		Note:     elementText(ntry, "NtryDtls/TxDtls/RmtInf/Ustrd"),
	}, nil
}

func elementText(parent *etree.Element, path string) string {
	if el := parent.FindElement(path); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func firstText(parent *etree.Element, paths ...string) string {
	for _, path := range paths {
		if text := elementText(parent, path); text != "" {
			return text
		}
	}
	return ""
}
