package storage

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// LastMessageLayout is the label format used for Record.LastMessageAt.
const LastMessageLayout = "January 2, 2006, 3:04 PM"

// DefaultAddedBy is used when a generator is given no creators.
var DefaultAddedBy = []string{"Kartikey Mishra"}

var (
	firstNames = []string{
		"John", "Emma", "Michael", "Sarah", "James", "Emily", "David", "Olivia",
		"Robert", "Sophia", "Aarav", "Priya", "Rohan", "Ananya", "Vikram", "Isha",
	}
	lastNames = []string{
		"Smith", "Wilson", "Brown", "Davis", "Johnson", "Taylor", "Martinez", "Anderson",
		"Thomas", "Garcia", "Sharma", "Patel", "Iyer", "Mehta", "Rao", "Kapoor",
	}
	mailDomains = []string{"gmail.com", "outlook.com", "yahoo.com", "example.org"}
)

// GenerateOptions controls the synthetic dataset.
type GenerateOptions struct {
	Count    int
	Seed     int64
	AddedBy  []string
	Location *time.Location
}

// Generate produces a deterministic synthetic dataset with ids 1..Count.
func Generate(opts GenerateOptions) []Record {
	if opts.Count <= 0 {
		return nil
	}
	addedBy := opts.AddedBy
	if len(addedBy) == 0 {
		addedBy = DefaultAddedBy
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	latest := time.Date(2024, time.July, 12, 12, 45, 0, 0, loc)
	const window = 180 * 24 * 60 // minutes

	records := make([]Record, opts.Count)
	for i := range records {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		records[i] = Record{
			ID:            int64(i + 1),
			Name:          first + " " + last,
			Phone:         fmt.Sprintf("+9176%08d", rng.Intn(100_000_000)),
			Email:         fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i%1000, mailDomains[rng.Intn(len(mailDomains))]),
			Score:         generateScore(rng),
			LastMessageAt: latest.Add(-time.Duration(rng.Intn(window)) * time.Minute).Format(LastMessageLayout),
			AddedBy:       addedBy[i%len(addedBy)],
			AvatarRef:     fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%d", i),
		}
	}
	return records
}

func generateScore(rng *rand.Rand) string {
	// roughly one in fifty rows carries no score
	if rng.Intn(50) == 0 {
		return ""
	}
	return fmt.Sprintf("%d", rng.Intn(100))
}
