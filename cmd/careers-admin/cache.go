package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// companyCacheKeyPrefix mirrors the key scheme the company service uses for
// read-through caching.
const companyCacheKeyPrefix = "company:"

type cacheClearOptions struct {
	Handle string
	All    bool
	DryRun bool
	Yes    bool
}

func runListCompanyCache(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	_, redisClient, err := connectInfraWithOptions(&connectInfraOptions{
		Logger:    cmdCtx.Logger,
		Config:    &cmdCtx.Config,
		WantDB:    false,
		WantRedis: true,
	})
	if err != nil {
		return err
	}
	if redisClient == nil {
		if writeErr := writeln(os.Stderr, "Redis client is not available"); writeErr != nil {
			return fmt.Errorf("print redis availability: %w", writeErr)
		}
		return nil
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	pattern := companyCacheKeyPrefix + "*"
	cmdCtx.Logger.Info("scanning redis", "pattern", pattern)

	iter := redisClient.Scan(ctx, 0, pattern, 100).Iterator()
	if headerErr := writef(os.Stdout, "\nCached Company Entries in Redis\n"); headerErr != nil {
		return fmt.Errorf("print cache header: %w", headerErr)
	}

	total, iterErr := writeCompanyCacheKeys(companyCacheScanInput{
		Ctx:    ctx,
		Iter:   iter,
		Client: redisClient,
		Logger: cmdCtx.Logger,
	})
	if iterErr != nil {
		return iterErr
	}

	if total == 0 {
		if nonePrintErr := writeln(os.Stdout, "(no keys found)"); nonePrintErr != nil {
			return fmt.Errorf("print cache none: %w", nonePrintErr)
		}
		return nil
	}

	if totalPrintErr := writef(os.Stdout, "\nTotal keys: %d\n", total); totalPrintErr != nil {
		return fmt.Errorf("print cache total: %w", totalPrintErr)
	}
	return nil
}

type companyCacheScanInput struct {
	Ctx    context.Context
	Iter   *redis.ScanIterator
	Client redis.UniversalClient
	Logger *slog.Logger
}

func writeCompanyCacheKeys(input companyCacheScanInput) (int, error) {
	if input.Iter == nil {
		return 0, errors.New("redis scan: nil iterator")
	}

	printer := companyCacheKeyPrinter{
		ctx:    input.Ctx,
		client: input.Client,
		logger: input.Logger,
	}

	total := 0
	for input.Iter.Next(input.Ctx) {
		key := input.Iter.Val()
		total++

		if err := printer.print(key); err != nil {
			return 0, err
		}
	}

	if err := input.Iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}

	return total, nil
}

type companyCacheKeyPrinter struct {
	ctx    context.Context
	client redis.UniversalClient
	logger *slog.Logger
}

func (p *companyCacheKeyPrinter) print(key string) error {
	if p == nil {
		return errors.New("company cache printer: nil receiver")
	}

	ttl, ttlErr := p.client.TTL(p.ctx, key).Result()
	if ttlErr != nil {
		if p.logger != nil {
			p.logger.ErrorContext(p.ctx, "failed to fetch TTL", "key", key, "error", ttlErr)
		}
		if ttlPrintErr := writef(os.Stdout, "  %s (TTL: error: %v)\n", key, ttlErr); ttlPrintErr != nil {
			return fmt.Errorf("print cache key ttl error: %w", ttlPrintErr)
		}
		return nil
	}

	if ttlPrintErr := writef(os.Stdout, "  %s (TTL: %s)\n", key, renderTTL(ttl)); ttlPrintErr != nil {
		return fmt.Errorf("print cache key ttl: %w", ttlPrintErr)
	}
	return nil
}

func runClearCompanyCache(cmdCtx *commandContext, args []string) error {
	opts, err := parseCacheClearFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := confirmAction(cacheClearConfirmOptions{opts}, "clear cached company entries"); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	_, redisClient, err := connectInfraWithOptions(&connectInfraOptions{
		Logger:    cmdCtx.Logger,
		Config:    &cmdCtx.Config,
		WantDB:    false,
		WantRedis: true,
	})
	if err != nil {
		return err
	}
	if redisClient == nil {
		if writeErr := writeln(os.Stderr, "Redis client is not available"); writeErr != nil {
			return fmt.Errorf("print redis availability: %w", writeErr)
		}
		return nil
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	req := &cacheDeleteRequest{
		Ctx:      ctx,
		Logger:   cmdCtx.Logger,
		Redis:    redisClient,
		Options:  opts,
		BatchCap: 1000,
	}
	stats, err := deleteCompanyCacheKeys(req)
	if err != nil {
		return err
	}

	if stats.total == 0 {
		if writeErr := writeln(os.Stdout, "No cached company entries found in Redis"); writeErr != nil {
			return fmt.Errorf("print cache summary: %w", writeErr)
		}
		return nil
	}

	if opts.DryRun {
		return printCacheDryRun(stats)
	}

	return printCacheSummary(stats)
}

func printCacheDryRun(stats cacheDeleteStats) error {
	if err := writef(os.Stdout, "Dry-run: would delete %d/%d keys\n", stats.deleted, stats.total); err != nil {
		return fmt.Errorf("print cache dry run: %w", err)
	}
	return nil
}

func printCacheSummary(stats cacheDeleteStats) error {
	if err := writef(os.Stdout, "Processed %d cached company entries\n", stats.total); err != nil {
		return fmt.Errorf("print cache processed: %w", err)
	}
	if err := writef(os.Stdout, "Deleted %d/%d keys\n", stats.deleted, stats.total); err != nil {
		return fmt.Errorf("print cache deleted: %w", err)
	}
	if stats.failures == 0 {
		return nil
	}

	if err := writef(os.Stdout, "Failed batches: %d\n", stats.failures); err != nil {
		return fmt.Errorf("print cache failures: %w", err)
	}
	return nil
}

type cacheDeleteRequest struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Redis    redis.UniversalClient
	Options  cacheClearOptions
	BatchCap int
}

type cacheDeleteStats struct {
	total    int
	deleted  int64
	failures int
}

func deleteCompanyCacheKeys(req *cacheDeleteRequest) (cacheDeleteStats, error) {
	pattern := companyCachePattern(req.Options)

	batchCap := req.BatchCap
	if batchCap <= 0 {
		batchCap = 1000
	}

	if req.Logger != nil {
		req.Logger.Info("scanning redis", "pattern", pattern, "dry_run", req.Options.DryRun)
	}

	iter := req.Redis.Scan(req.Ctx, 0, pattern, 100).Iterator()
	batch := make([]string, 0, batchCap)

	stats := cacheDeleteStats{}
	for iter.Next(req.Ctx) {
		key := iter.Val()

		stats.total++
		batch = append(batch, key)

		if len(batch) == batchCap {
			flushCacheBatch(req, batch, &stats)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return stats, fmt.Errorf("redis scan: %w", err)
	}

	flushCacheBatch(req, batch, &stats)
	return stats, nil
}

func flushCacheBatch(req *cacheDeleteRequest, batch []string, stats *cacheDeleteStats) {
	if len(batch) == 0 {
		return
	}
	if req.Options.DryRun {
		stats.deleted += int64(len(batch))
		if req.Logger != nil {
			req.Logger.Info("dry-run skipping cache delete", "count", len(batch))
		}
		return
	}
	n, delErr := req.Redis.Del(req.Ctx, batch...).Result()
	if delErr != nil {
		stats.failures++
		if req.Logger != nil {
			req.Logger.Error(
				"failed to delete cache keys",
				"count",
				len(batch),
				"error",
				delErr,
			)
		}
		if err := writef(os.Stdout, "Failed to delete %d keys: %v\n", len(batch), delErr); err != nil &&
			req.Logger != nil {
			req.Logger.Error("stdout write for cache delete failure failed", "error", err)
		}
		return
	}
	stats.deleted += n
}

func companyCachePattern(opts cacheClearOptions) string {
	if opts.Handle != "" {
		return companyCacheKeyPrefix + opts.Handle
	}
	return companyCacheKeyPrefix + "*"
}

func parseCacheClearFlags(args []string) (cacheClearOptions, error) {
	fs := flag.NewFlagSet("clear-company-cache", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts cacheClearOptions
	fs.StringVar(&opts.Handle, "handle", "", "Company handle to clear (required unless --all)")
	fs.BoolVar(&opts.All, "all", false, "Clear cached entries for all companies")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print actions without executing")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return cacheClearOptions{}, err
	}

	opts.Handle = strings.ToLower(strings.TrimSpace(opts.Handle))
	if err := validateCacheClearOptions(opts); err != nil {
		return cacheClearOptions{}, err
	}

	return opts, nil
}

func validateCacheClearOptions(opts cacheClearOptions) error {
	if opts.All {
		if opts.Handle != "" {
			return errors.New("--all cannot be combined with --handle")
		}
		return nil
	}
	if opts.Handle == "" {
		return errors.New("--handle is required unless --all is provided")
	}
	return nil
}

type cacheClearConfirmOptions struct {
	opts cacheClearOptions
}

func (c cacheClearConfirmOptions) IsDryRun() bool { return c.opts.DryRun }
func (c cacheClearConfirmOptions) IsYes() bool    { return c.opts.Yes }
func (c cacheClearConfirmOptions) GetWarning() string {
	return "WARNING: this will remove cached entries for every company."
}

func (c cacheClearConfirmOptions) GetTarget() string {
	if c.opts.Handle == "" {
		return ""
	}
	return fmt.Sprintf("company %q", c.opts.Handle)
}

func renderTTL(d time.Duration) string {
	switch {
	case d == -1*time.Second:
		return "no expiry"
	case d == -2*time.Second:
		return "key missing"
	default:
		return d.String()
	}
}
