package booking

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hotelbooking/internal/domain"
)

const exportSheet = "Bookings"

var exportHeader = []interface{}{
	"ID", "Room", "Guest", "Phone", "Check-in", "Check-out",
	"Total", "Paid", "Balance", "Status", "Source", "Remark",
}

// ExportBookings writes every booking as an .xlsx workbook.
func (s *Service) ExportBookings(ctx context.Context, w io.Writer) error {
	rows, err := s.ListBookings(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		room := ""
		if r.Room != nil {
			room = r.Room.RoomNumber
		}
		total, _ := r.TotalAmount.Float64()
		paid, _ := r.PaidAmount.Float64()
		balance, _ := r.Balance.Float64()

		line := []interface{}{
			r.ID, room, r.GuestName, r.Phone,
			r.CheckInDate.Format(domain.DateLayout), r.CheckOutDate.Format(domain.DateLayout),
			total, paid, balance, string(r.Status), r.Source, r.Remark,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &line); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
