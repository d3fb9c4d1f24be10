package calculator

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/sharestate"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewSessionStartsFromDefaults(t *testing.T) {
	s := New(nil)

	if s.Inputs() != compound.DefaultInputs() {
		t.Fatalf("expected default inputs, got %+v", s.Inputs())
	}
	if mathutil.Round(s.Result()) != 19671.51 {
		t.Fatalf("expected 19671.51, got %v", s.Result())
	}
	if s.Token() != sharestate.Encode(compound.DefaultInputs()) {
		t.Fatalf("unexpected token %q", s.Token())
	}
	if s.CanUndo() || s.CanRedo() {
		t.Fatal("fresh session should have no history")
	}
}

func TestSetRecomputesAndReencodes(t *testing.T) {
	s := New(zap.NewNop())

	if err := s.Set(constants.KeyAnnualContribution, "$1,000"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(constants.KeyNumberOfYears, "20"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	in := s.Inputs()
	if in.AnnualContribution != 1000 || in.NumberOfYears != 20 {
		t.Fatalf("unexpected inputs %+v", in)
	}
	if s.Result() != compound.Compute(10000, 1000, 20, 0.07) {
		t.Fatalf("result not recomputed: %v", s.Result())
	}
	if sharestate.Decode(s.Token()) != in {
		t.Fatalf("token %q does not decode to current inputs", s.Token())
	}
}

func TestSetRejectsInvalidValue(t *testing.T) {
	s := New(zap.NewNop())
	before := s.Token()

	err := s.Set(constants.KeyPrincipal, "-50")
	if !errors.Is(err, ErrInvalidInputs) {
		t.Fatalf("expected ErrInvalidInputs, got %v", err)
	}
	if s.Token() != before {
		t.Fatal("invalid edit must not change state")
	}
	if s.CanUndo() {
		t.Fatal("invalid edit must not create history")
	}
}

func TestApply(t *testing.T) {
	s := New(zap.NewNop())
	in := compound.Inputs{Principal: 500, AnnualContribution: 50, NumberOfYears: 3, InterestRate: 0}

	if err := s.Apply(in); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if s.Result() != 650 {
		t.Fatalf("expected linear result 650, got %v", s.Result())
	}

	bad := in
	bad.InterestRate = -1
	if err := s.Apply(bad); !errors.Is(err, ErrInvalidInputs) {
		t.Fatalf("expected ErrInvalidInputs, got %v", err)
	}
	if s.Inputs() != in {
		t.Fatal("rejected Apply changed inputs")
	}
}

func TestUndoRedoRestoresResultAndToken(t *testing.T) {
	s := New(zap.NewNop())
	original := s.Token()

	if err := s.Set(constants.KeyInterestRate, "5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	changed := s.Token()

	if !s.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if s.Token() != original || s.Inputs().InterestRate != 7 {
		t.Fatalf("undo did not restore state: %+v", s.Inputs())
	}
	if !s.Redo() {
		t.Fatal("expected redo to succeed")
	}
	if s.Token() != changed {
		t.Fatalf("redo did not restore token, got %q", s.Token())
	}
	if s.Redo() {
		t.Fatal("expected nothing left to redo")
	}
}

func TestLoadFallsBackPerField(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := New(zap.New(core))

	s.Load("principal=abc&numberOfYears=5")

	in := s.Inputs()
	if in.Principal != 10000 || in.NumberOfYears != 5 || in.InterestRate != 7 || in.AnnualContribution != 0 {
		t.Fatalf("unexpected inputs %+v", in)
	}
	warnings := s.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], constants.KeyPrincipal) {
		t.Fatalf("expected a single principal warning, got %v", warnings)
	}
	if logs.FilterField(zap.String("field", constants.KeyPrincipal)).Len() != 1 {
		t.Fatalf("expected warn log for principal, got %v", logs.All())
	}
	if s.CanUndo() {
		t.Fatal("loading a token must restart history")
	}
}

func TestLoadURLAndShareURL(t *testing.T) {
	s := New(zap.NewNop(), WithBaseURL("https://calculators.example.com/compound-interest"))
	if err := s.Set(constants.KeyPrincipal, "2500"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	link, err := s.ShareURL()
	if err != nil {
		t.Fatalf("ShareURL() error = %v", err)
	}

	restored := New(zap.NewNop())
	if err := restored.LoadURL(link); err != nil {
		t.Fatalf("LoadURL() error = %v", err)
	}
	if restored.Inputs() != s.Inputs() || restored.Result() != s.Result() {
		t.Fatalf("restored %+v, expected %+v", restored.Inputs(), s.Inputs())
	}

	if err := restored.LoadURL("http://[::1"); err == nil {
		t.Fatal("expected error for malformed link")
	}
}

func TestWithInputs(t *testing.T) {
	in := compound.Inputs{Principal: 1, AnnualContribution: 2, NumberOfYears: 3, InterestRate: 4}
	s := New(zap.NewNop(), WithInputs(in), WithHistoryLimit(5))
	if s.Inputs() != in {
		t.Fatalf("expected %+v, got %+v", in, s.Inputs())
	}

	invalid := New(zap.NewNop(), WithInputs(compound.Inputs{Principal: -1}))
	if invalid.Inputs() != compound.DefaultInputs() {
		t.Fatalf("invalid initial inputs should be ignored, got %+v", invalid.Inputs())
	}
	if len(invalid.Warnings()) == 0 {
		t.Fatal("expected warning for invalid initial inputs")
	}
}

func TestReport(t *testing.T) {
	s := New(zap.NewNop(), WithBaseURL("/compound-interest"))

	report, err := s.Report(true)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if report.Token != s.Token() || report.Result != s.Result() {
		t.Fatalf("report does not match session: %+v", report)
	}
	if len(report.Schedule) != 10 {
		t.Fatalf("expected 10 schedule rows, got %d", len(report.Schedule))
	}
	if report.ShareURL != "/compound-interest?"+s.Token() {
		t.Fatalf("unexpected share URL %q", report.ShareURL)
	}
	if !strings.HasPrefix(report.Description, "$10,000.00 will become $19,671.51") {
		t.Fatalf("unexpected description %q", report.Description)
	}

	withoutSchedule, err := s.Report(false)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if withoutSchedule.Schedule != nil {
		t.Fatal("expected schedule to be omitted")
	}
}

func TestReportOverflow(t *testing.T) {
	overflow := compound.Inputs{Principal: 1e300, NumberOfYears: 1000, InterestRate: 100}

	tests := []struct {
		name    string
		session func() *Session
	}{
		{"initial inputs", func() *Session { return New(zap.NewNop(), WithInputs(overflow)) }},
		{"loaded token", func() *Session {
			s := New(zap.NewNop())
			s.Load("principal=1e300&numberOfYears=1000&interestRate=100")
			return s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.session()
			if !math.IsInf(s.Result(), 1) {
				t.Fatalf("expected +Inf result, got %v", s.Result())
			}
			if _, err := s.Report(false); !errors.Is(err, ErrResultOverflow) {
				t.Fatalf("expected ErrResultOverflow, got %v", err)
			}
			if !strings.Contains(s.Description(), "$∞") {
				t.Fatalf("unexpected description %q", s.Description())
			}
		})
	}
}
