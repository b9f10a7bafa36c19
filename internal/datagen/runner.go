package datagen

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/okian/harmony/internal/domain/types"
	"github.com/okian/harmony/pkg/logger"
)

type tasksResponse struct {
	Tasks []string `json:"tasks"`
}

// Smoke checks a running server: /healthz answers, and every task's
// ranking holds the ranking invariants. Tasks with too few candidates
// are counted, not failed.
func Smoke(ctx context.Context, cfg SmokeConfig) (SmokeStats, error) {
	start := time.Now()
	if cfg.TopN < 1 {
		cfg.TopN = DefaultSmokeTopN
	}
	if cfg.Workers < 1 {
		cfg.Workers = DefaultSmokeWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSmokeTimeout
	}

	logger.Get().Info(ctx, "starting smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("topN", cfg.TopN),
		logger.Int("workers", cfg.Workers),
	)

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := checkServiceHealth(ctx, client); err != nil {
		return SmokeStats{}, err
	}

	var tasks tasksResponse
	status, err := client.getJSON(ctx, "/api/tasks", &tasks)
	if err != nil {
		return SmokeStats{}, err
	}
	if status != http.StatusOK {
		return SmokeStats{}, fmt.Errorf("%w: /api/tasks returned %d", ErrUnhealthy, status)
	}

	stats := rankAll(ctx, client, tasks.Tasks, cfg)
	stats.Duration = time.Since(start)

	logger.Get().Info(ctx, "smoke run finished",
		logger.Int("tasks", stats.Tasks),
		logger.Int("ranked", stats.Ranked),
		logger.Int("insufficient", stats.Insufficient),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
	)
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d tasks", ErrSmokeFailed, stats.Failed, stats.Tasks)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	status, _, err := client.get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: /healthz returned %d", ErrUnhealthy, status)
	}
	return nil
}

type taskResult struct {
	task         string
	insufficient bool
	err          error
}

// rankAll requests every task's ranking through a worker pool.
func rankAll(ctx context.Context, client *HTTPClient, tasks []string, cfg SmokeConfig) SmokeStats {
	taskChan := make(chan string, cfg.Workers*2)
	resultChan := make(chan taskResult, len(tasks))
	var wg sync.WaitGroup

	for i := 0; i < min(cfg.Workers, max(len(tasks), 1)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				resultChan <- rankOne(ctx, client, task, cfg.TopN)
			}
		}()
	}

	go func() {
		defer close(taskChan)
		for _, task := range tasks {
			select {
			case <-ctx.Done():
				return
			case taskChan <- task:
			}
		}
	}()

	wg.Wait()
	close(resultChan)

	stats := SmokeStats{Tasks: len(tasks)}
	for res := range resultChan {
		switch {
		case res.err != nil:
			stats.Failed++
			stats.Failures = append(stats.Failures, res.err.Error())
		case res.insufficient:
			stats.Insufficient++
		default:
			stats.Ranked++
		}
	}
	// Tasks never dispatched because ctx ended.
	if done := stats.Ranked + stats.Insufficient + stats.Failed; done < stats.Tasks {
		stats.Failed += stats.Tasks - done
		stats.Failures = append(stats.Failures, fmt.Sprintf("%d tasks not checked: %v", stats.Tasks-done, ctx.Err()))
	}
	return stats
}

func rankOne(ctx context.Context, client *HTTPClient, task string, topN int) taskResult {
	path := "/api/teams?task=" + url.QueryEscape(task) + "&top=" + strconv.Itoa(topN)
	var ranking types.TeamRanking
	status, err := client.getJSON(ctx, path, &ranking)
	switch {
	case err != nil:
		return taskResult{task: task, err: err}
	case status == http.StatusUnprocessableEntity:
		return taskResult{task: task, insufficient: true}
	case status != http.StatusOK:
		return taskResult{task: task, err: fmt.Errorf("%s: status %d", task, status)}
	}
	return taskResult{task: task, err: verifyRanking(ranking, topN)}
}
