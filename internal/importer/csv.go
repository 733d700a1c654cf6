package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/model"
)

// Columns is the header of a penny CSV file, shared with the exporter. The
// id and mood columns are optional on import; a missing id gets a generated
// one.
var Columns = []string{"id", "date", "category", "note", "source", "amount", "mood"}

// CSVParser parses penny CSV exports (and hand-written files following the
// same header).
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads a CSV file with a header row. Dates are RFC 3339; amounts are
// signed decimals (negative = expense).
func (p *CSVParser) Parse(reader io.Reader) ([]model.Transaction, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	line := 1
	for {
		record, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, readErr)
		}

		txn, convErr := p.convertRecord(record, index)
		if convErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, convErr)
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

func (p *CSVParser) convertRecord(record []string, index map[string]int) (model.Transaction, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := time.Parse(time.RFC3339, field("date"))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid date %q: %w", field("date"), err)
	}

	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", field("amount"), err)
	}

	txn := model.Transaction{
		ID:       field("id"),
		Date:     date,
		Category: field("category"),
		Note:     field("note"),
		Source:   field("source"),
		Amount:   amount,
	}
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.Category == "" {
		return model.Transaction{}, fmt.Errorf("missing category")
	}

	if moodText := field("mood"); moodText != "" {
		mood, moodErr := strconv.Atoi(moodText)
		if moodErr != nil {
			return model.Transaction{}, fmt.Errorf("invalid mood %q: %w", moodText, moodErr)
		}
		txn.Mood = &mood
	}

	return txn, nil
}

// columnIndex maps known column names to their positions in the header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"date", "category", "amount"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV header missing required column %q", required)
		}
	}
	return index, nil
}
