package tools

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func FileExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func attachment(c *gin.Context, displayName, contentType string) {
	escaped := url.QueryEscape(displayName)

	c.Header("Content-Type", contentType)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
}

func SendStoredFile(c *gin.Context, path, displayName, contentType string) error {
	attachment(c, displayName, contentType)
	c.File(path)
	return nil
}

// SendExcel 直接输出内存中的工作簿
func SendExcel(c *gin.Context, f *excelize.File, displayName string) error {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return err
	}
	attachment(c, displayName, ExcelContentType)
	c.Data(http.StatusOK, ExcelContentType, buf.Bytes())
	return nil
}
