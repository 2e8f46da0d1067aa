// Package workbook reads report tables from spreadsheets and writes annotated
// output workbooks.
//
// Reading supports .xlsx files through excelize and .csv files through the
// standard CSV reader. The first row of the selected sheet is the header. Cells the
// workbook stores as strings are flagged as text so that a code like "00123" is never
// turned into a number.
//
// Writing produces one sheet per Sheet value with a bold header row. Cells listed in
// Sheet.Highlights are filled so discrepancies stand out when the workbook is opened.
//
// # Usage
//
//	tbl, err := workbook.Read(f, "report.xlsx", "")
//	...
//	err = workbook.Save("out.xlsx",
//	    workbook.FromTable("manual", manual),
//	    workbook.FromTable("automated", automated),
//	)
package workbook
