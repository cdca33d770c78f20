package sheets

import (
	sheetsapi "google.golang.org/api/sheets/v4"

	"inventario-backend/internal/config"
	"inventario-backend/internal/domain/models"
)

// Style turns a workbook into the formatting requests applied after its
// values are written. The two strategies reproduce the two historical
// layouts of the exported spreadsheet.
type Style interface {
	Requests(wb models.Workbook, sheetIDs map[string]int64) []*sheetsapi.Request
}

// StyleFor maps the configured style name onto a strategy. Unknown names
// fall back to the plain strategy.
func StyleFor(name string) Style {
	if name == config.StyleStyled {
		return StyledStyle{}
	}
	return PlainStyle{}
}

// PlainStyle only sizes columns to their content.
type PlainStyle struct{}

// Requests emits one column-width request per sized column of every page.
func (PlainStyle) Requests(wb models.Workbook, sheetIDs map[string]int64) []*sheetsapi.Request {
	return columnWidthRequests(wb, sheetIDs)
}

// StyledStyle sizes columns and additionally applies a bold white-on-blue
// header, thin borders around the data cells and an autofilter over the
// first page's data range.
type StyledStyle struct{}

func (StyledStyle) Requests(wb models.Workbook, sheetIDs map[string]int64) []*sheetsapi.Request {
	requests := columnWidthRequests(wb, sheetIDs)

	for i, page := range wb.Pages {
		sheetID, ok := sheetIDs[page.Name]
		if !ok {
			continue
		}

		columns := int64(len(page.ColumnWidths))
		totalRows := int64(len(page.Rows))
		if len(page.Header) > 0 {
			totalRows++
			requests = append(requests, headerFormatRequest(sheetID, int64(len(page.Header))))
		}
		if totalRows > 0 && columns > 0 {
			requests = append(requests, bordersRequest(sheetID, totalRows, columns))
		}
		if i == 0 && len(page.Header) > 0 {
			requests = append(requests, &sheetsapi.Request{
				SetBasicFilter: &sheetsapi.SetBasicFilterRequest{
					Filter: &sheetsapi.BasicFilter{
						Range: &sheetsapi.GridRange{
							SheetId:          sheetID,
							StartRowIndex:    0,
							EndRowIndex:      totalRows,
							StartColumnIndex: 0,
							EndColumnIndex:   columns,
						},
					},
				},
			})
		}
	}
	return requests
}

func columnWidthRequests(wb models.Workbook, sheetIDs map[string]int64) []*sheetsapi.Request {
	var requests []*sheetsapi.Request
	for _, page := range wb.Pages {
		sheetID, ok := sheetIDs[page.Name]
		if !ok {
			continue
		}
		for col, width := range page.ColumnWidths {
			requests = append(requests, &sheetsapi.Request{
				UpdateDimensionProperties: &sheetsapi.UpdateDimensionPropertiesRequest{
					Range: &sheetsapi.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "COLUMNS",
						StartIndex: int64(col),
						EndIndex:   int64(col + 1),
					},
					Properties: &sheetsapi.DimensionProperties{PixelSize: pixelWidth(width)},
					Fields:     "pixelSize",
				},
			})
		}
	}
	return requests
}

// pixelWidth converts a character width into an approximate pixel size.
func pixelWidth(chars int) int64 {
	return int64(chars)*7 + 24
}

func headerFormatRequest(sheetID, columns int64) *sheetsapi.Request {
	return &sheetsapi.Request{
		RepeatCell: &sheetsapi.RepeatCellRequest{
			Range: &sheetsapi.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    0,
				EndRowIndex:      1,
				StartColumnIndex: 0,
				EndColumnIndex:   columns,
			},
			Cell: &sheetsapi.CellData{
				UserEnteredFormat: &sheetsapi.CellFormat{
					BackgroundColor: &sheetsapi.Color{Red: 0.16, Green: 0.33, Blue: 0.62},
					TextFormat: &sheetsapi.TextFormat{
						Bold:            true,
						ForegroundColor: &sheetsapi.Color{Red: 1, Green: 1, Blue: 1},
					},
				},
			},
			Fields: "userEnteredFormat(backgroundColor,textFormat)",
		},
	}
}

func bordersRequest(sheetID, rows, columns int64) *sheetsapi.Request {
	thin := &sheetsapi.Border{Style: "SOLID"}
	return &sheetsapi.Request{
		UpdateBorders: &sheetsapi.UpdateBordersRequest{
			Range: &sheetsapi.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    0,
				EndRowIndex:      rows,
				StartColumnIndex: 0,
				EndColumnIndex:   columns,
			},
			Top:             thin,
			Bottom:          thin,
			Left:            thin,
			Right:           thin,
			InnerHorizontal: thin,
			InnerVertical:   thin,
		},
	}
}
