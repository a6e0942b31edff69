package patterns

import (
	"strings"
	"testing"

	"github.com/varalys/piiguard/internal/types"
)

func TestSSN(t *testing.T) {
	fs := SSN("my ssn is 123-45-6789 thanks")
	if len(fs) != 1 {
		t.Fatalf("expected 1 span, got %d", len(fs))
	}
	if fs[0].Text != "123-45-6789" || fs[0].Start != 10 || fs[0].End != 21 {
		t.Fatalf("unexpected span: %+v", fs[0])
	}
	if fs[0].Engine != types.EnginePattern {
		t.Fatalf("expected pattern engine tag")
	}
}

func TestEmail(t *testing.T) {
	fs := Email("contact test@example.com or admin@sub.example.co.uk")
	if len(fs) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(fs))
	}
}

func TestPhoneConventions(t *testing.T) {
	for _, s := range []string{"(555) 123-4567", "555-123-4567", "+1 555.123.4567"} {
		if len(Phone("call "+s)) == 0 {
			t.Fatalf("expected phone match for %q", s)
		}
	}
}

func TestCreditCardLuhnGate(t *testing.T) {
	if len(CreditCard("card 4532-1234-5678-9010")) != 1 {
		t.Fatalf("expected valid card to be flagged")
	}
	if len(CreditCard("card 4532-1234-5678-9011")) != 0 {
		t.Fatalf("expected invalid card to be dropped silently")
	}
}

func TestIPAddress(t *testing.T) {
	if len(IPAddress("host 192.168.1.1 up")) != 1 {
		t.Fatalf("expected IP match")
	}
	if len(IPAddress("octet 999.1.1.1 is junk")) != 0 {
		t.Fatalf("expected out-of-range octet to be rejected")
	}
}

func TestPerson(t *testing.T) {
	if len(Person("met with Dr. Jane Roe yesterday")) == 0 {
		t.Fatalf("expected titled name match")
	}
	if len(Person("John Smith signed")) == 0 {
		t.Fatalf("expected capitalized pair match")
	}
	// Documented miss, not a defect.
	if len(Person("john smith signed")) != 0 {
		t.Fatalf("bare lowercase names are out of grammar")
	}
}

func TestOrganization(t *testing.T) {
	if len(Organization("employed by Acme Widgets Inc. since 2019")) == 0 {
		t.Fatalf("expected corporate suffix match")
	}
	if len(Organization("represented by Smith & Wesson LLP")) == 0 {
		t.Fatalf("expected law-firm phrasing match")
	}
}

func TestStructuredIDs(t *testing.T) {
	if len(CaseNumber("see docket 1:22-cv-04512 for details")) != 1 {
		t.Fatalf("expected docket match")
	}
	if len(CaseNumber("filed under Case No. 22-CV-01234")) != 1 {
		t.Fatalf("expected keyword-anchored case number match")
	}
	if len(MedicalRecord("patient MRN: 1234567")) != 1 {
		t.Fatalf("expected MRN match")
	}
}

func TestScanRespectsEnableFlags(t *testing.T) {
	text := "mail test@example.com ssn 123-45-6789"
	all := Scan(text, nil, nil)
	if len(all) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(all))
	}
	noEmail := Scan(text, func(e types.EntityType) bool { return e != types.EntityEmail }, nil)
	if len(noEmail) != 1 || noEmail[0].Entity != types.EntitySSN {
		t.Fatalf("expected SSN only, got %+v", noEmail)
	}
}

func TestScanEmptyAndLargeInput(t *testing.T) {
	if got := Scan("", nil, nil); got != nil {
		t.Fatalf("empty input must produce no spans")
	}
	big := strings.Repeat("nothing sensitive here. ", 5000)
	if got := Scan(big, nil, nil); len(got) != 0 {
		t.Fatalf("expected no spans in filler text, got %d", len(got))
	}
}

func TestCustomPattern(t *testing.T) {
	c, err := NewCustom("EMPLOYEE_ID", `\bEMP-\d{6}\b`, 0)
	if err != nil {
		t.Fatal(err)
	}
	fs := Scan("badge EMP-123456", nil, []Custom{c})
	if len(fs) != 1 || fs[0].Entity != "EMPLOYEE_ID" {
		t.Fatalf("unexpected spans: %+v", fs)
	}
	if fs[0].Confidence != defaultCustomConfidence {
		t.Fatalf("expected default confidence, got %v", fs[0].Confidence)
	}
}

func TestCustomPatternRejection(t *testing.T) {
	if _, err := NewCustom("SSN", `\d+`, 0); err == nil {
		t.Fatalf("expected collision with built-in label to be rejected")
	}
	if _, err := NewCustom("BROKEN", `[unclosed`, 0); err == nil {
		t.Fatalf("expected malformed pattern to be rejected")
	}
	if _, err := NewCustom("X", `\d`, 1.5); err == nil {
		t.Fatalf("expected out-of-range confidence to be rejected")
	}
	if _, err := NewCustom("", `\d`, 0); err == nil {
		t.Fatalf("expected empty label to be rejected")
	}
}
