package pdfsource

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frag(x, y float64, s string) pdf.Text {
	return pdf.Text{X: x, Y: y, W: float64(len([]rune(s))) * 8, S: s}
}

func TestGroupRows(t *testing.T) {
	texts := []pdf.Text{
		frag(100, 700, "見積書"),
		frag(50, 650.5, "宛先"),
		frag(120, 650, "株式会社サンプル商事"),
		frag(50, 600, "作業場所："),
		frag(130, 600, "東京都千代田区1-1"),
	}

	rows := groupRows(texts)
	require.Len(t, rows, 3)

	// top of page first
	assert.Equal(t, "見積書", rows[0].frags[0].S)
	// near-equal Y merges into one row, sorted by X
	require.Len(t, rows[1].frags, 2)
	assert.Equal(t, "宛先", rows[1].frags[0].S)
	assert.Equal(t, "株式会社サンプル商事", rows[1].frags[1].S)
}

func TestCellsOf(t *testing.T) {
	row := textRow{y: 500, frags: []pdf.Text{
		frag(50, 500, "エアコン"),
		frag(82, 500, "清掃"), // adjacent, same cell
		frag(200, 500, "2"),
		frag(260, 500, "台"),
		frag(320, 500, "￥12,500"),
	}}

	cells := cellsOf(row)
	require.Len(t, cells, 4)
	assert.Equal(t, "エアコン清掃", cells[0].text)
	assert.Equal(t, "2", cells[1].text)
	assert.Equal(t, "台", cells[2].text)
	assert.Equal(t, "￥12,500", cells[3].text)
}

func TestBuildPage_TableBelowHeader(t *testing.T) {
	rows := []textRow{
		{y: 700, frags: []pdf.Text{frag(50, 700, "作業場所：東京都港区1-2-3")}},
		{y: 600, frags: []pdf.Text{
			frag(40, 600, "項目"), frag(100, 600, "品名・仕様"), frag(250, 600, "数量"),
			frag(310, 600, "単位"), frag(370, 600, "単価"), frag(450, 600, "金額"),
		}},
		{y: 580, frags: []pdf.Text{
			frag(40, 580, "1"), frag(100, 580, "定期清掃"), frag(250, 580, "1"),
			frag(310, 580, "式"), frag(370, 580, "30,000"), frag(450, 580, "30,000"),
		}},
		{y: 540, frags: []pdf.Text{
			frag(200, 540, "小計"), frag(450, 540, "30,000"),
		}},
	}

	page := buildPage(rows)

	require.Len(t, page.Tables, 1)
	table := page.Tables[0]
	// header plus one data row; the subtotal row ends the table
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "定期清掃", table.Rows[1][1])
	assert.Equal(t, "式", table.Rows[1][3])
	assert.Equal(t, "30,000", table.Rows[1][4])

	assert.Contains(t, page.Lines[0], "作業場所")
}

func TestBuildPage_WrappedNameMergesIntoRow(t *testing.T) {
	rows := []textRow{
		{y: 600, frags: []pdf.Text{
			frag(40, 600, "項目"), frag(100, 600, "品名・仕様"), frag(250, 600, "数量"),
			frag(310, 600, "単位"), frag(370, 600, "単価"), frag(450, 600, "金額"),
		}},
		{y: 580, frags: []pdf.Text{
			frag(40, 580, "1"), frag(100, 580, "業務用エアコン"), frag(250, 580, "1"),
			frag(310, 580, "台"), frag(370, 580, "85,000"), frag(450, 580, "85,000"),
		}},
		{y: 565, frags: []pdf.Text{frag(100, 565, "分解洗浄")}},
	}

	page := buildPage(rows)

	require.Len(t, page.Tables, 1)
	require.Len(t, page.Tables[0].Rows, 2)
	assert.Equal(t, "業務用エアコン\n分解洗浄", page.Tables[0].Rows[1][1])
}
