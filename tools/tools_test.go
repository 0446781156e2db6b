package tools

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type row struct {
	Rank   int    `excel:"순위"`
	Name   string `excel:"성함"`
	Hidden string `excel:"-"`
	Point  *int
}

func TestNewWorkbook(t *testing.T) {
	lee, kim := 20, 15
	f, err := NewWorkbook("랭킹", []*row{{Rank: 1, Name: "Lee", Hidden: "x", Point: &lee}, {Rank: 2, Name: "Kim", Point: &kim}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	r, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, []string{"랭킹"}, r.GetSheetList())

	rows, err := r.GetRows("랭킹")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"순위", "성함", "Point"},
		{"1", "Lee", "20"},
		{"2", "Kim", "15"},
	}, rows)
}

func TestNewWorkbookEmptyWritesHeader(t *testing.T) {
	f, err := NewWorkbook("랭킹", []row{})
	require.NoError(t, err)
	rows, err := f.GetRows("랭킹")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"순위", "성함", "Point"}}, rows)
}

func TestExportToExcelRejectsNonSlice(t *testing.T) {
	f := excelize.NewFile()
	require.Error(t, ExportToExcel(f, "", 42))
	require.Error(t, ExportToExcel(f, "", []int{1}))
}

func TestPassword(t *testing.T) {
	hash, err := PasswordHash("s3cret")
	require.NoError(t, err)
	require.True(t, PasswordCompare("s3cret", hash))
	require.False(t, PasswordCompare("wrong", hash))
}
