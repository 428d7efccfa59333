package export

import (
	"fmt"

	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/xuri/excelize/v2"
)

var stadiumsHeader = []string{
	"StadiumID",
	"StadiumName",
	"City",
	"State",
	"Latitude",
	"Longitude",
	"FieldInfo",
}

// WriteStadiumDirectory saves the venue listing as a single-sheet
// workbook.
func WriteStadiumDirectory(path string, venues []models.Venue) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Stadiums"
	if _, err := file.NewSheet(sheet); err != nil {
		return fmt.Errorf("create stadiums sheet: %w", err)
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}
	index, err := file.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("locate stadiums sheet: %w", err)
	}
	file.SetActiveSheet(index)

	rows := make([][]interface{}, 0, len(venues)+1)
	header := make([]interface{}, len(stadiumsHeader))
	for i, name := range stadiumsHeader {
		header[i] = name
	}
	rows = append(rows, header)

	for _, venue := range venues {
		rows = append(rows, []interface{}{
			venue.ID,
			venue.Name,
			venue.Location.City,
			venue.Location.State,
			venue.Location.DefaultCoordinates.Latitude,
			venue.Location.DefaultCoordinates.Longitude,
			venue.FieldInfo.Description,
		})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("stadiums row cell: %w", err)
		}
		if err := file.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write stadiums row: %w", err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save stadiums workbook: %w", err)
	}
	return nil
}
