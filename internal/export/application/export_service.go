package application

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	analyticsapp "insights/internal/analytics/application"
	analyticsdomain "insights/internal/analytics/domain"
	"insights/internal/export/domain"
)

// ExportService génère des exports CSV et Parquet en mémoire à partir des
// transactions filtrées. Les lignes corrompues sont exportées telles quelles:
// l'export est un format d'échange, pas une agrégation.
type ExportService struct {
	store     analyticsapp.TransactionReader
	batchSize int
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(store analyticsapp.TransactionReader) *ExportService {
	return &ExportService{
		store:     store,
		batchSize: 1000,
	}
}

// ExportTransactionsToCSV génère un CSV en mémoire, sans écrire sur disque
func (s *ExportService) ExportTransactionsToCSV(filter analyticsdomain.Filter) ([]byte, error) {
	txs, err := s.store.FindTransactions(filter)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, 1024*1024)) // 1 MB initial
	w := csv.NewWriter(buf)

	if err := w.Write(domain.CSVHeaders()); err != nil {
		return nil, err
	}
	for i, t := range txs {
		row := domain.NewTransactionExportRow(t)
		if err := w.Write(row.ToCSVRow()); err != nil {
			return nil, err
		}
		// Flush périodique pour limiter le buffer interne du writer
		if (i+1)%s.batchSize == 0 {
			w.Flush()
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportTransactionsToParquet génère un fichier Parquet en mémoire
// (compression Snappy)
func (s *ExportService) ExportTransactionsToParquet(filter analyticsdomain.Filter) ([]byte, error) {
	txs, err := s.store.FindTransactions(filter)
	if err != nil {
		return nil, err
	}

	fw := buffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(domain.TransactionExportRow), 4)
	if err != nil {
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024 // 128 MB
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, t := range txs {
		if err := pw.Write(domain.NewTransactionExportRow(t)); err != nil {
			return nil, fmt.Errorf("write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finalize parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return fw.Bytes(), nil
}
