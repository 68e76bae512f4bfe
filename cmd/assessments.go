package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/upskill/internal/assessment"
	"github.com/abhisek/upskill/internal/catalog"
	"github.com/abhisek/upskill/internal/questions"
	"github.com/abhisek/upskill/internal/store"
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "List and take skill assessments",
}

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			passed := map[string]bool{}
			if u, err := e.currentUser(ctx); err == nil {
				results, err := e.store.ResultRepo().ByUser(ctx, u.ID)
				if err != nil {
					return fmt.Errorf("load results: %w", err)
				}
				for i := range results {
					if results[i].Passed() {
						passed[results[i].AssessmentID] = true
					}
				}
			}

			fmt.Printf("%-22s  %-36s  %-12s  %3s  %5s  %4s  %s\n", "ID", "Title", "Level", "Qs", "Mins", "Pass", "")
			fmt.Println(strings.Repeat("─", 98))
			for _, a := range catalog.Assessments() {
				mark := ""
				if passed[a.ID] {
					mark = "✓ passed"
				}
				fmt.Printf("%-22s  %-36s  %-12s  %3d  %5d  %3d%%  %s\n",
					a.ID, truncate(a.Title, 36), a.Level, a.QuestionCount, a.DurationMins, a.PassingScore, mark)
			}
			return nil
		})
	},
}

var assessmentsTakeCmd = &cobra.Command{
	Use:   "take <assessment-id>",
	Short: "Take a timed assessment in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			a, err := e.flow.Begin(ctx, u.ID, args[0])
			if errors.Is(err, assessment.ErrAlreadyPassed) {
				fmt.Println("You have already passed this assessment. See `upskill certificates`.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s\n%d questions · %d minutes · pass at %d%%\n\nGenerating questions...\n",
				a.Assessment.Title, a.Assessment.QuestionCount, a.Assessment.DurationMins, a.Assessment.PassingScore)
			a.Start()
			if err := e.flow.Generate(ctx, a); err != nil {
				return fmt.Errorf("generate questions: %w", err)
			}
			if a.Source == questions.SourceFallback {
				fmt.Println("Using the built-in question bank.")
			}

			runAttempt(ctx, a, os.Stdin)

			r, err := e.flow.Complete(ctx, a)
			if err != nil {
				return fmt.Errorf("save result: %w", err)
			}
			printResult(a, r)
			return nil
		})
	},
}

// runAttempt reads answers from in until the attempt finishes or its timer
// runs out.
func runAttempt(ctx context.Context, a *assessment.Attempt, in io.Reader) {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	expired := make(chan struct{})
	timer := assessment.StartTimer(ctx, a, time.Second, func() { close(expired) })
	defer timer.Stop()

	fmt.Println("Answer with 1-4 or a-d. n/p move, g <num> jumps, t shows time, f finishes.")
	for {
		var finished bool
		timer.Do(func(a *assessment.Attempt) {
			finished = a.Phase != assessment.PhaseInProgress
			if !finished {
				printQuestion(a)
			}
		})
		if finished {
			return
		}

		select {
		case <-expired:
			fmt.Println("\nTime is up!")
			return
		case <-ctx.Done():
			timer.Do(func(a *assessment.Attempt) { a.Finish() })
			return
		case line, ok := <-lines:
			if !ok {
				timer.Do(func(a *assessment.Attempt) { a.Finish() })
				return
			}
			timer.Do(func(a *assessment.Attempt) { applyInput(a, line) })
		}
	}
}

// readLines sends the trimmed lines of in until in ends or done is closed.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-done:
				return
			}
		}
	}()
	return lines
}

func printQuestion(a *assessment.Attempt) {
	q := a.Current()
	fmt.Printf("\nQuestion %d/%d  (%d:%02d left, %d answered)\n%s\n",
		a.Index+1, len(a.Questions), a.Remaining/60, a.Remaining%60, a.Answered(), q.Question)
	for i, opt := range q.Options {
		mark := " "
		if a.Answers[a.Index] == i {
			mark = "●"
		}
		fmt.Printf("  %s %c) %s\n", mark, 'a'+rune(i), opt)
	}
	fmt.Print("> ")
}

// applyInput interprets one line typed during an attempt.
func applyInput(a *assessment.Attempt, line string) {
	line = strings.ToLower(line)
	switch {
	case line == "":
		return
	case line == "n":
		a.Next()
	case line == "p":
		a.Prev()
	case line == "f":
		a.Finish()
	case line == "t":
		fmt.Printf("%d:%02d remaining\n", a.Remaining/60, a.Remaining%60)
	case strings.HasPrefix(line, "g"):
		n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
		if err != nil || !a.Goto(n-1) {
			fmt.Println("No such question.")
		}
	default:
		opt := -1
		if len(line) == 1 {
			switch c := line[0]; {
			case c >= '1' && c <= '4':
				opt = int(c - '1')
			case c >= 'a' && c <= 'd':
				opt = int(c - 'a')
			}
		}
		if !a.Select(opt) {
			fmt.Println("Pick 1-4 or a-d.")
			return
		}
		if a.Index < len(a.Questions)-1 {
			a.Next()
		}
	}
}

func printResult(a *assessment.Attempt, r *store.AssessmentResult) {
	fmt.Println()
	if a.Expired {
		fmt.Println("Unanswered questions were counted as wrong.")
	}
	status := "Not passed"
	if r.Passed() {
		status = "Passed"
	}
	fmt.Printf("%s: %d%% (%d/%d correct, pass at %d%%)\n", status, r.Score, r.Correct, r.Total, a.Assessment.PassingScore)
	fmt.Printf("Time spent:  %d:%02d\n", r.TimeSpentSecs/60, r.TimeSpentSecs%60)
	fmt.Printf("Percentile:  %d\n", r.Percentile)
	if r.Badge != "" {
		fmt.Printf("Badge:       %s\n", r.Badge)
	}
	if r.CertificateID != nil {
		fmt.Printf("Certificate: %s\n", *r.CertificateID)
	}
	for i, q := range a.Questions {
		if a.Answers[i] == q.CorrectAnswer {
			continue
		}
		fmt.Printf("\n✗ %d. %s\n  Answer: %s\n", i+1, q.Question, q.Options[q.CorrectAnswer])
		if q.Explanation != "" {
			fmt.Printf("  %s\n", q.Explanation)
		}
	}
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List your assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			results, err := e.store.ResultRepo().ByUser(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("load results: %w", err)
			}
			if len(results) == 0 {
				fmt.Println("No assessments taken yet.")
				return nil
			}
			fmt.Printf("%-16s  %-36s  %5s  %-7s  %4s  %-8s\n", "Date", "Assessment", "Score", "Status", "Pct", "Source")
			fmt.Println(strings.Repeat("─", 88))
			for _, r := range results {
				fmt.Printf("%-16s  %-36s  %4d%%  %-7s  %4d  %-8s\n",
					r.CompletedAt.Local().Format("2006-01-02 15:04"), truncate(r.AssessmentTitle, 36),
					r.Score, r.Status, r.Percentile, r.QuestionSource)
			}
			return nil
		})
	},
}

var certificatesCmd = &cobra.Command{
	Use:   "certificates",
	Short: "List your certificates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(ctx context.Context, e *env, u *store.User) error {
			certs, err := e.store.CertificateRepo().ByUser(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("load certificates: %w", err)
			}
			if len(certs) == 0 {
				fmt.Println("No certificates yet. Pass an assessment to earn one.")
				return nil
			}
			for _, c := range certs {
				fmt.Printf("★ %s\n  %s · score %d%% · issued %s\n  %s\n\n",
					c.Badge, c.Title, c.Score, c.IssuedAt.Local().Format("Jan 2, 2006"), c.ID)
			}
			return nil
		})
	},
}

func init() {
	assessmentsCmd.AddCommand(assessmentsListCmd)
	assessmentsCmd.AddCommand(assessmentsTakeCmd)
}
