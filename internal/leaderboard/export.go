package leaderboard

import (
	"bytes"
	"citizens-link/internal/global/bucket"
	"citizens-link/internal/store"
	"citizens-link/tools"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const SheetName = "랭킹"

// Workbook 完整排行榜的 xlsx
func Workbook(ctx context.Context, s store.Store) (*excelize.File, error) {
	entries, err := Rankings(ctx, s)
	if err != nil {
		return nil, err
	}
	return tools.NewWorkbook(SheetName, Rows(entries, Tiers()))
}

func FileName(at time.Time) string {
	return fmt.Sprintf("rankings-%s.xlsx", at.Format("20060102-150405"))
}

// Archive 重新计算排行榜并上传快照
func Archive(ctx context.Context, s store.Store, b *bucket.Bucket) (*bucket.Archived, error) {
	if b == nil {
		return nil, bucket.ErrNotConfigured
	}
	entries, err := Refresh(ctx, s)
	if err != nil {
		return nil, err
	}
	f, err := tools.NewWorkbook(SheetName, Rows(entries, Tiers()))
	if err != nil {
		return nil, errors.Wrap(err, "生成排行榜表格失败")
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.WithStack(err)
	}
	archived, err := b.Archive(ctx, FileName(time.Now()), tools.ExcelContentType, &buf)
	if err != nil {
		return nil, err
	}
	log.Info("排行榜快照已归档", "key", archived.Key, "entries", len(entries))
	return archived, nil
}
