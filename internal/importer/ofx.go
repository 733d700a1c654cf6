// Package importer reads transactions from external files (CSV exports and
// OFX/QFX bank statements) into the local store.
package importer

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/model"
)

// OFXParser parses OFX/QFX statement files.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *OFXParser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Parse parses an OFX/QFX statement and returns transactions. Amounts keep
// the statement's signs: debits negative, credits positive. The statement's
// transaction type (DEBIT, CREDIT, ATM, ...) maps to a default category.
func (p *OFXParser) Parse(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			source := string(stmt.BankAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convertTransaction(ofxTx, source))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			source := string(stmt.CCAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convertTransaction(ofxTx, source))
			}
		}
	}

	slog.Info("parsed OFX file",
		"transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertTransaction converts an OFX transaction to our model. The
// statement amount is a big.Rat and converts to decimal exactly, without
// passing through float64.
func (p *OFXParser) convertTransaction(ofxTx ofxgo.Transaction, source string) model.Transaction {
	txn := model.Transaction{
		ID:       string(ofxTx.FiTID),
		Date:     ofxTx.DtPosted.Time,
		Note:     noteFrom(ofxTx),
		Source:   source,
		Amount:   decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 8),
		Category: categoryForType(fmt.Sprintf("%v", ofxTx.TrnType)),
	}
	return txn
}

// noteFrom picks the most descriptive text the statement offers.
func noteFrom(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}
	name := strings.TrimSpace(string(tx.Name))
	if memo := strings.TrimSpace(string(tx.Memo)); memo != "" && name == "" {
		return memo
	}
	return name
}

// categoryForType maps OFX transaction types to default categories; the
// user can recategorize after import.
func categoryForType(trnType string) string {
	switch trnType {
	case "INT", "DIV", "CREDIT", "DEP", "DIRECTDEP":
		return "salary"
	case "ATM", "CASH":
		return "shopping"
	case "FEE", "SRVCHG":
		return "housing"
	default:
		return "shopping"
	}
}
