package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
	"github.com/JitendraDubey2004/TalentFlow/internal/storage"
)

var firstNames = []string{
	"Aarav", "Priya", "Rohan", "Ananya", "Vikram", "Sneha",
	"Arjun", "Kavya", "Rahul", "Meera", "Dev", "Isha",
}

var lastNames = []string{
	"Sharma", "Patel", "Reddy", "Gupta", "Singh", "Iyer",
	"Mehta", "Nair", "Joshi", "Verma",
}

const candidatesPerJob = 8

// Apply loads fixtures from dir and seeds the repository with demo jobs,
// assessment schemas, and candidates. Seeding is skipped when the store
// already has jobs so restarts never duplicate data.
func Apply(ctx context.Context, repo storage.Repository, dir string) error {
	existing, err := repo.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing jobs: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("store already seeded, skipping", "jobs", len(existing))
		return nil
	}

	fixtures, err := LoadFixtures(dir)
	if err != nil {
		return err
	}
	if len(fixtures) == 0 {
		slog.Warn("no seed fixtures found", "dir", dir)
		return nil
	}

	rng := rand.New(rand.NewSource(42)) // deterministic demo data

	for _, f := range fixtures {
		job := f.Job
		if job.Status == "" {
			job.Status = models.JobActive
		}
		if job.Slug == "" {
			job.Slug = fmt.Sprintf("job-%d", job.ID)
		}
		if err := repo.CreateJob(ctx, &job); err != nil {
			return fmt.Errorf("failed to seed job %d: %w", job.ID, err)
		}

		if f.Assessment != nil {
			if _, err := repo.SaveAssessment(ctx, job.ID, f.Assessment); err != nil {
				return fmt.Errorf("failed to seed assessment for job %d: %w", job.ID, err)
			}
		}

		for i := 0; i < candidatesPerJob; i++ {
			first := firstNames[rng.Intn(len(firstNames))]
			last := lastNames[rng.Intn(len(lastNames))]
			c := &models.Candidate{
				JobID: job.ID,
				Name:  first + " " + last,
				Email: fmt.Sprintf("%s.%s%d@example.com", first, last, rng.Intn(1000)),
				Stage: models.Stages[rng.Intn(len(models.Stages))],
			}
			if err := repo.CreateCandidate(ctx, c); err != nil {
				return fmt.Errorf("failed to seed candidate for job %d: %w", job.ID, err)
			}
		}
	}

	slog.Info("seeded demo data",
		"jobs", len(fixtures),
		"candidates_per_job", candidatesPerJob,
	)
	return nil
}
