package manifest

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// SourceStatus 单个清单条目的预检结果
type SourceStatus struct {
	Path      string // 清单中的绝对路径
	Available bool   // 当前是否仍然可读
	Err       error  // 不可用时的具体原因
}

// CheckSources 并发预检清单条目的可用性
//
// 文件可能在加入清单之后被移动或删除，生成前统一复查一遍。
// 返回的结果与输入保持相同顺序；存在缺失条目时整体返回
// ErrSourceFileUnavailable（按清单顺序报告第一个缺失项），
// 但所有条目仍会被检查完。
func CheckSources(ctx context.Context, files []string) ([]SourceStatus, error) {
	statuses := make([]SourceStatus, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			status := SourceStatus{Path: path, Available: true}
			if _, err := os.Stat(path); err != nil {
				status.Available = false
				status.Err = fmt.Errorf("%w: %s", ErrSourceFileUnavailable, path)
			}

			statuses[i] = status
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, status := range statuses {
		if !status.Available {
			return statuses, status.Err
		}
	}

	return statuses, nil
}
