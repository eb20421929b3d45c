package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixture files follow the real exports: a Chinese header, the same header
// repeated in English, then data rows.

const mainHeader = "鄉鎮市區,交易標的,土地位置建物門牌,都市土地使用分區,交易年月日,總價元,單價元平方公尺,建物移轉總面積平方公尺,屋齡,編號"

const mainEnglish = "The villages and towns urban district,transaction sign,land sector position building sector house number plate,the use zoning or compiles and checks,transaction year month and day,total price NTD,the unit price (NTD / square meter),building shifting total area,building age,serial number"

const buildHeader = "編號,屋齡,主要用途,建築完成年月"

const buildEnglish = "serial number,building age,main use,construction to complete the years"

type mainRow struct {
	Town, Sign, Address, Date, Total, Unit, Area, Age, Code string
}

func (r mainRow) csv() string {
	return strings.Join([]string{
		r.Town, r.Sign, r.Address, "住", r.Date, r.Total, r.Unit, r.Area, r.Age, r.Code,
	}, ",")
}

func mainCSV(rows ...mainRow) string {
	lines := []string{mainHeader, mainEnglish}
	for _, r := range rows {
		lines = append(lines, r.csv())
	}
	return strings.Join(lines, "\n") + "\n"
}

// buildCSV takes code, age pairs.
func buildCSV(pairs ...[2]string) string {
	lines := []string{buildHeader, buildEnglish}
	for _, p := range pairs {
		lines = append(lines, p[0]+","+p[1]+",住家用,1020101")
	}
	return strings.Join(lines, "\n") + "\n"
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testIndex() *ReferenceIndex {
	return NewReferenceIndex(map[string]City{
		"A": {Name: "臺北市", Towns: []Town{
			{Code: 63000030, Title: "大安區"},
			{Code: 63000100, Title: "內湖區"},
			{Code: 99999999, Title: "大安區"}, // duplicate title, first entry wins
		}},
		"B": {Name: "臺中市", Towns: []Town{
			{Code: 66000010, Title: "中區"},
		}},
		"F": {Name: "新北市"},
	})
}

func intPtr(i int) *int { return &i }
