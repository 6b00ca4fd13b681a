package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"BitcoinTracker/internal/model"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// record is the on-disk shape of a transaction. value_in_usd is the price
// per coin (legacy name); price_in_usd is an alias for it. cost_in_usd is
// the total amount paid or received.
type record struct {
	Type     string          `json:"type" validate:"required,oneof=buy sell"`
	Value    decimal.Decimal `json:"value_in_usd" validate:"gte=0"`
	Price    decimal.Decimal `json:"price_in_usd" validate:"gte=0"`
	Cost     decimal.Decimal `json:"cost_in_usd" validate:"gte=0"`
	Quantity decimal.Decimal `json:"quantity_in_btc" validate:"gt=0"`
	Date     string          `json:"date,omitempty"`
	Note     string          `json:"note,omitempty"`
}

type document struct {
	Transactions []record `json:"transactions"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Numeric tags (gt, gte) need a number to compare against.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Load reads a ledger file. The format is picked from the extension: .json,
// or .yaml/.yml.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
	case ".yaml", ".yml":
		if data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("parse ledger: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported ledger format %q", ext)
	}

	l, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("transactions", l.Len()).Msg("ledger loaded")
	return l, nil
}

// Parse decodes a JSON ledger document.
func Parse(data []byte) (*Ledger, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}

	txs := make([]model.Transaction, 0, len(doc.Transactions))
	for i, rec := range doc.Transactions {
		tx, err := rec.transaction()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return New(txs), nil
}

func (r record) transaction() (model.Transaction, error) {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if err := validate.Struct(&r); err != nil {
		return model.Transaction{}, err
	}
	kind, err := model.ParseTxKind(r.Type)
	if err != nil {
		return model.Transaction{}, err
	}

	price := r.Price
	switch {
	case price.IsZero():
		price = r.Value
	case !r.Value.IsZero() && !r.Value.Equal(price):
		return model.Transaction{}, fmt.Errorf("value_in_usd %s and price_in_usd %s disagree; both are the price per coin", r.Value, price)
	}

	tx := model.Transaction{
		Kind:               kind,
		USDValue:           r.Cost,
		BTCQuantity:        r.Quantity,
		PriceAtTransaction: price,
		Note:               r.Note,
	}
	switch {
	case tx.USDValue.IsZero():
		tx.USDValue = price.Mul(r.Quantity)
	case tx.PriceAtTransaction.IsZero():
		tx.PriceAtTransaction = tx.USDValue.Div(r.Quantity)
	}
	if tx.USDValue.IsZero() {
		return model.Transaction{}, fmt.Errorf("%s needs value_in_usd, price_in_usd or cost_in_usd", kind)
	}

	if r.Date != "" {
		if tx.Date, err = parseDate(r.Date); err != nil {
			return model.Transaction{}, err
		}
	}
	return tx, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// yamlToJSON converts a YAML document into JSON so both formats share one
// decoder.
func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
