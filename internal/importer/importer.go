// Package importer reads product CSV sheets into catalog create params.
// Header names are matched loosely so exports from different spreadsheet
// tools import without manual fixing.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/catalog"
	enc "github.com/jfonseca/inventorypro/internal/encoding"
)

// column identifies a logical field a header cell can map to.
type column int

const (
	colSKU column = iota
	colName
	colCategory
	colKind
	colPrice
	colStock
	colMinStock
)

// headerAliases maps normalized header cells to logical columns. Adding
// support for another export format is just adding aliases here.
var headerAliases = map[string]column{
	"sku":             colSKU,
	"code":            colSKU,
	"name":            colName,
	"product":         colName,
	"product name":    colName,
	"category":        colCategory,
	"kind":            colKind,
	"type":            colKind,
	"price":           colPrice,
	"unit price":      colPrice,
	"unit_price":      colPrice,
	"stock":           colStock,
	"quantity":        colStock,
	"stock_quantity":  colStock,
	"min stock":       colMinStock,
	"min_stock":       colMinStock,
	"min_stock_level": colMinStock,
}

type colIndex map[column]int

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a product sheet. The input may be in any encoding the
// encoding package detects, and the header row may be preceded by title
// or blank rows.
func (p *Parser) Parse(r io.Reader) ([]catalog.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header row found: need at least name and price columns")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// detectHeader scans for the first row containing at least the name and
// price columns.
func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if col, ok := headerAliases[name]; ok {
				cols[col] = i
			}
		}

		_, hasName := cols[colName]
		_, hasPrice := cols[colPrice]

		if hasName && hasPrice {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseRows(cols colIndex, rows [][]string, headerRow int) ([]catalog.CreateParams, error) {
	var params []catalog.CreateParams

	for i, row := range rows {
		rowNum := headerRow + i + 2

		name := cellValue(row, cols, colName)
		priceStr := cellValue(row, cols, colPrice)

		if name == "" && priceStr == "" {
			// Blank or footer row.
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("row %d: missing product name", rowNum)
		}

		price, err := parsePrice(priceStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", rowNum, priceStr)
		}

		stockStr := cellValue(row, cols, colStock)

		stock, err := parseCount(stockStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid stock %q", rowNum, stockStr)
		}

		p := catalog.CreateParams{
			SKU:           cellValue(row, cols, colSKU),
			Name:          name,
			Category:      cellValue(row, cols, colCategory),
			Kind:          parseKind(cellValue(row, cols, colKind)),
			UnitPrice:     price,
			StockQuantity: stock,
		}

		if s := cellValue(row, cols, colMinStock); s != "" {
			minStock, err := parseCount(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid min stock %q", rowNum, s)
			}

			p.MinStockLevel = &minStock
		}

		params = append(params, p)
	}

	return params, nil
}

// parsePrice accepts both plain decimals ("1234.56") and European
// formatting ("1.234,56").
func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price")
	}

	return d, nil
}

func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, fmt.Errorf("negative count")
	}

	return n, nil
}

func parseKind(s string) catalog.Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw_material", "raw material", "material":
		return catalog.KindRawMaterial
	default:
		return catalog.KindFinishedProduct
	}
}

func cellValue(row []string, cols colIndex, col column) string {
	idx, ok := cols[col]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
