package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample leave requests for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := sqlx.Connect("pgx", cfg.Database.Source)
		if err != nil {
			log.Fatalf("failed to connect to db: %v", err)
		}
		defer db.Close()

		if clearData {
			if _, err := db.Exec("DELETE FROM leave_requests"); err != nil {
				log.Fatalf("failed to clear leave_requests: %v", err)
			}
			fmt.Println("Cleared existing leave requests")
		}

		ddmmyyyy := func(t time.Time) string {
			return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
		}

		now := time.Now()
		samples := []map[string]interface{}{
			{
				"leave_id":       fmt.Sprintf("LID-%d", now.Unix()),
				"requested_at":   now,
				"requester":      "Jane Doe",
				"from_date":      ddmmyyyy(now.AddDate(0, 0, 7)),
				"to_date":        ddmmyyyy(now.AddDate(0, 0, 9)),
				"reason":         "Vacation",
				"comp_off_count": 2,
				"verdict":        "Pending",
				"verdict_reason": "",
			},
			{
				"leave_id":       fmt.Sprintf("LID-%d", now.Unix()-86400),
				"requested_at":   now.AddDate(0, 0, -1),
				"requester":      "John Smith",
				"from_date":      ddmmyyyy(now.AddDate(0, 0, 14)),
				"to_date":        ddmmyyyy(now.AddDate(0, 0, 14)),
				"reason":         "Medical appointment",
				"comp_off_count": 1,
				"verdict":        "Approved",
				"verdict_reason": "Approved by team lead",
			},
			{
				"leave_id":       fmt.Sprintf("LID-%d", now.Unix()-172800),
				"requested_at":   now.AddDate(0, 0, -2),
				"requester":      "John Smith",
				"from_date":      ddmmyyyy(now.AddDate(0, 0, 3)),
				"to_date":        ddmmyyyy(now.AddDate(0, 0, 4)),
				"reason":         "Family event",
				"comp_off_count": 1,
				"verdict":        "Cancelled",
				"verdict_reason": "Cancelled by user: plans changed",
			},
		}

		insert := `INSERT INTO leave_requests
			(leave_id, requested_at, requester, from_date, to_date, reason, comp_off_count, verdict, verdict_reason, created_at, updated_at)
			VALUES (:leave_id, :requested_at, :requester, :from_date, :to_date, :reason, :comp_off_count, :verdict, :verdict_reason, now(), now())
			ON CONFLICT (leave_id) DO NOTHING`

		for _, sample := range samples {
			if _, err := db.NamedExec(insert, sample); err != nil {
				log.Fatalf("failed to seed leave request %v: %v", sample["leave_id"], err)
			}
		}

		fmt.Printf("Seeded %d leave requests\n", len(samples))
	},
}
