package excel

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
	"github.com/ptrevisan/gestionale-trasporti/internal/core/ports"
)

// Exporter produces the spedizioni workbook the office prints for the
// carrier. One row per shipment, joined anagrafiche inline.
type Exporter struct {
	spedizioni ports.SpedizioneRepository
	logger     *slog.Logger
}

func NewExporter(spedizioni ports.SpedizioneRepository, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{spedizioni: spedizioni, logger: logger}
}

const sheet = "Spedizioni"

var headers = []string{
	"Numero",
	"Data DDT",
	"Numero DDT",
	"Committente",
	"Destinatario",
	"Città",
	"Provincia",
	"Colli",
	"Peso (kg)",
	"Contrassegno",
	"Stato",
}

// ExportSpedizioniXLSX returns the workbook bytes. Empty from/to means all
// shipments, otherwise the data_ddt window is inclusive on both ends.
func (e *Exporter) ExportSpedizioniXLSX(ctx context.Context, from, to string) ([]byte, error) {
	var (
		rows []domain.SpedizioneDettaglio
		err  error
	)
	if from == "" && to == "" {
		rows, err = e.spedizioni.List(ctx)
	} else {
		if from == "" {
			from = "0000-00-00"
		}
		if to == "" {
			to = "9999-12-31"
		}
		rows, err = e.spedizioni.ListByDateRange(ctx, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("load spedizioni for export: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, s := range rows {
		rowNum := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, s.NumeroSpedizione)
		write(2, s.DataDDT)
		write(3, s.NumeroDDT)
		write(4, s.Committente.RagioneSociale)
		write(5, s.Destinatario.RagioneSociale)
		write(6, s.Destinatario.Citta)
		write(7, s.Destinatario.Provincia)
		write(8, s.Colli)
		write(9, s.PesoKg)
		if s.Contrassegno != nil {
			write(10, *s.Contrassegno)
		}
		write(11, string(s.Stato))
	}

	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "D", "E", 28)
	_ = f.SetColWidth(sheet, "F", "F", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	e.logger.Info("spedizioni_export", "rows", len(rows), "from", from, "to", to)
	return buf.Bytes(), nil
}
