// printcard manages the measurement-card print queue. Jobs are queued with
// "add", moved to printing with "print" (which renders the card), and then
// explicitly closed out with "done" or "fail" once the physical print is
// known to have worked or not.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"tailorshop/internal/config"
	"tailorshop/internal/db"
	"tailorshop/internal/domain"
	"tailorshop/internal/export"
	"tailorshop/internal/printqueue"
	customerrepo "tailorshop/internal/repository/customer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	queue, err := printqueue.Open(cfg.PrintQueuePath)
	if err != nil {
		log.Fatalf("open print queue: %v", err)
	}

	switch os.Args[1] {
	case "add":
		runAdd(cfg, queue, os.Args[2:])
	case "list":
		runList(queue)
	case "print":
		runPrint(cfg, queue, os.Args[2:])
	case "done":
		runTransition(queue, os.Args[2:], queue.Complete)
	case "fail":
		runTransition(queue, os.Args[2:], queue.Fail)
	case "remove":
		runRemove(queue, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: printcard <command> [flags]

commands:
  add     -customer <id> -type <shirt|pant|trouser>   queue a card
  list                                                show the queue
  print   -job <id>                                   render the card and mark printing
  done    -job <id>                                   mark a printing job completed
  fail    -job <id>                                   mark a printing job failed
  remove  -job <id>                                   drop a job from the queue`)
}

func runAdd(cfg config.Config, queue *printqueue.Queue, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	customerID := fs.String("customer", "", "customer id")
	garment := fs.String("type", "", "measurement type (shirt, pant, trouser)")
	fs.Parse(args)
	if *customerID == "" || !domain.GarmentType(*garment).Valid() {
		fs.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	customer, _, err := lookup(ctx, cfg, *customerID, domain.GarmentType(*garment))
	if err != nil {
		log.Fatalf("add: %v", err)
	}

	job := queue.Add(customer.ID, customer.Name, customer.OrderNumber, *garment)
	saveQueue(queue)
	fmt.Printf("queued job %s for %s (%s, %s)\n", job.ID, customer.Name, customer.OrderNumber, *garment)
}

func runList(queue *printqueue.Queue) {
	jobs := queue.Jobs()
	if len(jobs) == 0 {
		fmt.Println("print queue is empty")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tORDER\tCUSTOMER\tTYPE\tCREATED")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Status, j.OrderNumber, j.CustomerName, j.MeasurementType,
			j.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func runPrint(cfg config.Config, queue *printqueue.Queue, args []string) {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	jobID := fs.String("job", "", "job id")
	fs.Parse(args)
	if *jobID == "" {
		fs.Usage()
		os.Exit(2)
	}

	job, err := queue.Start(*jobID)
	if err != nil {
		log.Fatalf("print: %v", err)
	}
	saveQueue(queue)

	ctx := context.Background()
	customer, measurement, err := lookup(ctx, cfg, job.CustomerID, domain.GarmentType(job.MeasurementType))
	if err != nil {
		// The job stays in printing; close it out with `printcard fail`.
		log.Fatalf("print: %v", err)
	}

	card, err := export.RenderCard(*customer, *measurement, time.Now())
	if err != nil {
		log.Fatalf("render card: %v", err)
	}
	fmt.Print(card)
	fmt.Fprintf(os.Stderr, "\njob %s is printing; run `printcard done -job %s` or `printcard fail -job %s`\n", job.ID, job.ID, job.ID)
}

func runTransition(queue *printqueue.Queue, args []string, apply func(string) (*printqueue.Job, error)) {
	fs := flag.NewFlagSet("transition", flag.ExitOnError)
	jobID := fs.String("job", "", "job id")
	fs.Parse(args)
	if *jobID == "" {
		fs.Usage()
		os.Exit(2)
	}

	job, err := apply(*jobID)
	if err != nil {
		log.Fatalf("%v", err)
	}
	saveQueue(queue)
	fmt.Printf("job %s is now %s\n", job.ID, job.Status)
}

func runRemove(queue *printqueue.Queue, args []string) {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	jobID := fs.String("job", "", "job id")
	fs.Parse(args)
	if *jobID == "" {
		fs.Usage()
		os.Exit(2)
	}

	if err := queue.Remove(*jobID); err != nil {
		log.Fatalf("remove: %v", err)
	}
	saveQueue(queue)
	fmt.Printf("removed job %s\n", *jobID)
}

// lookup fetches the customer and its first measurement of the wanted type.
func lookup(ctx context.Context, cfg config.Config, customerID string, garment domain.GarmentType) (*domain.Customer, *domain.Measurement, error) {
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	repo := customerrepo.NewPostgres(pool, nil)
	customer, err := repo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("customer %s not found", customerID)
		}
		return nil, nil, err
	}
	for i := range customer.Measurements {
		if customer.Measurements[i].Type == garment {
			return customer, &customer.Measurements[i], nil
		}
	}
	return nil, nil, fmt.Errorf("customer %s has no %s measurement", customerID, garment)
}

func saveQueue(queue *printqueue.Queue) {
	if err := queue.Save(); err != nil {
		log.Fatalf("save print queue: %v", err)
	}
}
