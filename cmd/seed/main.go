package main

import (
	"context"
	"os"
	"strings"

	"github.com/truestate/sales-dashboard/internal/config"
	"github.com/truestate/sales-dashboard/internal/ingest"
	"github.com/truestate/sales-dashboard/internal/model"
	"github.com/truestate/sales-dashboard/internal/repository"
	"github.com/truestate/sales-dashboard/pkg/logger"
	"github.com/truestate/sales-dashboard/pkg/pg"
	"github.com/truestate/sales-dashboard/pkg/prom"
	"github.com/truestate/sales-dashboard/pkg/worker"
)

// Bulk reload: clear all transactions, then stream the CSV export and insert
// it in fixed-size batches. The reload is an administrative operation and is
// never run concurrently with itself.
func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	if err := pg.Migrate(writeConf, config.Get().MigrationsDir); err != nil {
		logger.Error("migration: error running migrations", "error", err)
		return
	}

	db, err := pg.CreateReadWrite(writeConf, writeConf, false)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}
	defer db.Close() //nolint

	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	f, err := os.Open(config.Get().SeedCSVPath)
	if err != nil {
		logger.Error("failed to open csv", "path", config.Get().SeedCSVPath, "error", err)
		return
	}
	defer f.Close() //nolint

	logger.Info("clearing old data..")
	if err := repo.DeleteAll(ctx); err != nil {
		logger.Error("failed to clear transactions", "error", err)
		return
	}

	batchSize := config.Get().SeedBatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	workers := config.Get().SeedWorkers
	if workers <= 0 {
		workers = 4
	}

	pool := worker.NewWorkerManager(workers*2, workers)
	pool.SetWorker(func(workerIndex int, job interface{}) {
		batch := job.([]*model.Transaction)
		if err := repo.CreateBatch(ctx, batch); err != nil {
			logger.Error("failed to insert batch", "worker", workerIndex, "size", len(batch), "error", err)
			return
		}
		prom.AddSeedRecords(len(batch))
	})
	pool.Start()

	logger.Info("starting batch upload..", "batch_size", batchSize, "workers", workers)

	batch := make([]*model.Transaction, 0, batchSize)
	total, err := ingest.ReadTransactions(f, func(txn *model.Transaction) error {
		batch = append(batch, txn)
		if len(batch) >= batchSize {
			pool.Enqueue(batch)
			batch = make([]*model.Transaction, 0, batchSize)
		}
		return nil
	})
	if err != nil {
		logger.Error("failed reading csv", "error", err)
	}
	if len(batch) > 0 {
		pool.Enqueue(batch)
	}

	pool.Close()
	pool.Wait()

	logger.Info("seeding completed", "records", total)
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
