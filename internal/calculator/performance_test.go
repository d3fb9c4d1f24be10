package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"go.uber.org/zap"
)

// TestPerformance times a full session from the example configuration out to
// the maximum number of years.
func TestPerformance(t *testing.T) {
	if !testing.Verbose() {
		t.Skip("Skipping performance test. Run with -v to enable.")
	}

	start := time.Now()
	conf, err := config.LoadConfiguration("../../config.yaml.example")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	in := conf.Inputs
	in.NumberOfYears = constants.MaxNumberOfYears
	in.AnnualContribution = 1000
	in.InterestRate = 1

	start = time.Now()
	session := New(zap.NewNop(), WithInputs(in))
	report, err := session.Report(true)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	reportTime := time.Since(start)

	start = time.Now()
	for i := 0; i < 1000; i++ {
		session.Load(report.Token)
	}
	reloadTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Build report: %v", reportTime)
	t.Logf("  Reload token x1000: %v", reloadTime)

	if total := loadTime + reportTime + reloadTime; total > 10*time.Second {
		t.Errorf("Total processing time %v exceeds 10 second threshold", total)
	}
	if len(report.Schedule) != constants.MaxNumberOfYears {
		t.Errorf("Expected %d schedule rows, got %d", constants.MaxNumberOfYears, len(report.Schedule))
	}
}

// TestDataConsistency checks that the session result, the schedule and the
// closed form all agree for the example configuration.
func TestDataConsistency(t *testing.T) {
	conf, err := config.LoadConfiguration("../../config.yaml.example")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	session := New(zap.NewNop(), WithInputs(conf.Inputs))
	report, err := session.Report(true)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	in := report.Inputs
	closed := compound.ClosedForm(in.Principal, in.AnnualContribution, in.NumberOfYears, in.Rate())
	if math.Abs(report.Result-closed) > constants.CurrencyTolerance {
		t.Errorf("result %v and closed form %v differ", report.Result, closed)
	}
	if n := len(report.Schedule); n == 0 || report.Schedule[n-1].EndBalance != report.Result {
		t.Errorf("schedule does not end at the result")
	}
	if got := compound.TotalContributions(in.Principal, report.Schedule); got != in.Principal+in.AnnualContribution*float64(in.NumberOfYears) {
		t.Errorf("unexpected total contributions %v", got)
	}
}
