package domain

import (
	"strconv"
	"time"

	analyticsdomain "insights/internal/analytics/domain"
	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "CSV"
	ExportFormatParquet ExportFormat = "Parquet"
)

// ExportJob représente un job d'export de transactions
type ExportJob struct {
	format    ExportFormat
	filter    analyticsdomain.Filter
	createdAt time.Time
}

// NewExportJob crée un nouveau job d'export avec validation
func NewExportJob(format ExportFormat, filter analyticsdomain.Filter) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return nil, shareddomain.NewValidationError("format", "must be CSV or Parquet")
	}
	return &ExportJob{
		format:    format,
		filter:    filter,
		createdAt: time.Now().UTC(),
	}, nil
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// Filter retourne le filtre appliqué à l'export
func (ej *ExportJob) Filter() analyticsdomain.Filter {
	return ej.filter
}

// CreatedAt retourne la date de création
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// TransactionExportRow ligne d'export à plat, taguée pour le writer Parquet.
// Les montants sont émis en chaînes à deux décimales pour le CSV et en DOUBLE
// pour Parquet (format d'échange, pas de ré-agrégation en aval).
type TransactionExportRow struct {
	TransactionID   string  `parquet:"name=transaction_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID      string  `parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	ProductID       string  `parquet:"name=product_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	ProductName     string  `parquet:"name=product_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category        string  `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	Quantity        int32   `parquet:"name=quantity, type=INT32"`
	UnitPrice       float64 `parquet:"name=unit_price, type=DOUBLE"`
	TotalAmount     float64 `parquet:"name=total_amount, type=DOUBLE"`
	TransactionDate string  `parquet:"name=transaction_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Region          string  `parquet:"name=region, type=BYTE_ARRAY, convertedtype=UTF8"`
	Channel         string  `parquet:"name=channel, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// NewTransactionExportRow aplatit une transaction en ligne d'export
func NewTransactionExportRow(t *txdomain.Transaction) TransactionExportRow {
	unitPrice, _ := t.UnitPrice().Amount().Float64()
	totalAmount, _ := t.TotalAmount().Amount().Float64()
	return TransactionExportRow{
		TransactionID:   string(t.ID()),
		CustomerID:      string(t.CustomerID()),
		ProductID:       string(t.ProductID()),
		ProductName:     t.ProductName(),
		Category:        t.Category(),
		Quantity:        int32(t.Quantity().Value()),
		UnitPrice:       unitPrice,
		TotalAmount:     totalAmount,
		TransactionDate: t.Date().Format("2006-01-02"),
		Region:          t.Region(),
		Channel:         string(t.Channel()),
	}
}

// ToCSVRow convertit en tableau pour CSV
func (r TransactionExportRow) ToCSVRow() []string {
	return []string{
		r.TransactionID,
		r.CustomerID,
		r.ProductID,
		r.ProductName,
		r.Category,
		strconv.Itoa(int(r.Quantity)),
		strconv.FormatFloat(r.UnitPrice, 'f', 2, 64),
		strconv.FormatFloat(r.TotalAmount, 'f', 2, 64),
		r.TransactionDate,
		r.Region,
		r.Channel,
	}
}

// CSVHeaders retourne les en-têtes CSV
func CSVHeaders() []string {
	return []string{
		"transaction_id",
		"customer_id",
		"product_id",
		"product_name",
		"category",
		"quantity",
		"unit_price",
		"total_amount",
		"transaction_date",
		"region",
		"channel",
	}
}
