package driver_test

import (
	"strings"
	"testing"

	"tycho/colors"
	"tycho/database"
	"tycho/driver"
	"tycho/feedback"
	"tycho/syntax"
	"tycho/types"
)

func check(t *testing.T, source string) (*syntax.File, []feedback.Item) {
	t.Helper()

	db := database.NewDb()
	file, err := syntax.Parse(db, "test.tycho", source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var items []feedback.Item
	colors.WithoutColor(func() {
		items = driver.Check(db, file, driver.Options{})
	})

	return file, items
}

func typeOf(t *testing.T, file *syntax.File, index int) string {
	t.Helper()

	fact, ok := database.GetFact[driver.TypeFact](file.Statements[index])
	if !ok {
		t.Fatalf("statement %d has no inferred type", index)
	}

	return types.Display(fact.Type)
}

func TestCheckInfersTypes(t *testing.T) {
	file, items := check(t, "x = 1\ny = x + 2\nhalf = 1.5 / 3.0\nname = \"tycho\"\nok = y < 10\n")
	if len(items) != 0 {
		t.Fatalf("expected no feedback, found %v", items)
	}

	for i, expected := range []string{"Int", "Int", "Float", "String", "Bool"} {
		if found := typeOf(t, file, i); found != expected {
			t.Errorf("statement %d: expected %s, found %s", i, expected, found)
		}
	}
}

func TestCheckAssignmentsFlowForward(t *testing.T) {
	file, items := check(t, "inc = x -> x + 1\ntwo = inc(1)\n")
	if len(items) != 0 {
		t.Fatalf("expected no feedback, found %v", items)
	}

	if found := typeOf(t, file, 0); found != "(Int) -> Int" {
		t.Errorf("expected (Int) -> Int, found %s", found)
	}

	if found := typeOf(t, file, 1); found != "Int" {
		t.Errorf("expected Int, found %s", found)
	}
}

func TestCheckOverloadsPreferExactMatches(t *testing.T) {
	file, items := check(t, "s = show(2)\n")
	if len(items) != 0 {
		t.Fatalf("expected no feedback, found %v", items)
	}

	if found := typeOf(t, file, 0); found != "String" {
		t.Errorf("expected String, found %s", found)
	}
}

func TestCheckMembersAndSubclassing(t *testing.T) {
	file, items := check(t, "r = circle.radius\nlabel = circle.name\npiece = \"hello\".slice(1, 3)\n")
	if len(items) != 0 {
		t.Fatalf("expected no feedback, found %v", items)
	}

	for i, expected := range []string{"Float", "String", "String"} {
		if found := typeOf(t, file, i); found != expected {
			t.Errorf("statement %d: expected %s, found %s", i, expected, found)
		}
	}
}

func TestCheckConstructors(t *testing.T) {
	file, items := check(t, "s = String(65)\n")
	if len(items) != 0 {
		t.Fatalf("expected no feedback, found %v", items)
	}

	if found := typeOf(t, file, 0); found != "String" {
		t.Errorf("expected String, found %s", found)
	}
}

func TestCheckAscriptionKinds(t *testing.T) {
	file, items := check(t, "e = 3 :: Equatable\nshape = circle :: Shape\nobj = circle :: AnyObject\ndyn = mystery :: Object\n")
	if len(items) != 0 {
		t.Fatalf("expected no feedback, found %v", items)
	}

	// Conformance and property ascriptions keep the value's own type; a
	// class ascription upcasts.
	for i, expected := range []string{"Int", "Shape", "Circle", "Object"} {
		if found := typeOf(t, file, i); found != expected {
			t.Errorf("statement %d: expected %s, found %s", i, expected, found)
		}
	}
}

func TestCheckReportsAscriptionFailures(t *testing.T) {
	_, items := check(t, "bad = 1 :: AnyObject\n")
	if len(items) != 1 || items[0].Id != "types" {
		t.Fatalf("expected one type error, found %v", items)
	}

	if !strings.Contains(items[0].Message, "not a class") {
		t.Errorf("unexpected message: %s", items[0].Message)
	}

	_, items = check(t, "bad = circle :: Object\n")
	if len(items) != 1 || !strings.Contains(items[0].Message, "dynamic member lookup") {
		t.Fatalf("expected a dynamic lookup error, found %v", items)
	}
}

func TestCheckTypeMembers(t *testing.T) {
	file, items := check(t, "idx = \"hello\".Index\n")
	if len(items) != 0 {
		t.Fatalf("expected no feedback, found %v", items)
	}

	if found := typeOf(t, file, 0); found != "Index" {
		t.Errorf("expected Index, found %s", found)
	}

	_, items = check(t, "bad = circle.Kind\n")
	if len(items) != 1 || !strings.Contains(items[0].Message, "no member") {
		t.Fatalf("expected a missing member error, found %v", items)
	}
}

func TestCheckReportsConversionFailures(t *testing.T) {
	_, items := check(t, "bad = \"hi\" as Int\n")
	if len(items) != 1 || items[0].Id != "types" {
		t.Fatalf("expected one type error, found %v", items)
	}

	if !strings.Contains(items[0].Message, "cannot convert") {
		t.Errorf("unexpected message: %s", items[0].Message)
	}
}

func TestCheckReportsMissingMembers(t *testing.T) {
	_, items := check(t, "oops = circle.area\n")
	if len(items) != 1 || items[0].Id != "types" {
		t.Fatalf("expected one type error, found %v", items)
	}

	if !strings.Contains(items[0].Message, "no member") {
		t.Errorf("unexpected message: %s", items[0].Message)
	}
}

func TestCheckReportsUnknownNames(t *testing.T) {
	_, items := check(t, "y = nope\n")
	if len(items) != 1 || items[0].Id != "names" {
		t.Fatalf("expected one name error, found %v", items)
	}
}

func TestCheckReportsAmbiguity(t *testing.T) {
	_, items := check(t, "double = x -> x + x\n")
	if len(items) != 1 || items[0].Id != "ambiguous" {
		t.Fatalf("expected an ambiguity, found %v", items)
	}

	if len(items[0].Notes) == 0 {
		t.Error("ambiguity feedback should list the tied choices")
	}
}

func TestCheckBudget(t *testing.T) {
	_, items := check(t, "s = show(abs(1) + abs(2))\n")
	if len(items) != 0 {
		t.Fatalf("expected no feedback, found %v", items)
	}

	db := database.NewDb()
	file, err := syntax.Parse(db, "test.tycho", "s = show(abs(1) + abs(2))\n")
	if err != nil {
		t.Fatal(err)
	}

	var limited []feedback.Item
	colors.WithoutColor(func() {
		limited = driver.Check(db, file, driver.Options{Budget: 3})
	})

	if len(limited) != 1 || limited[0].Id != "exhausted" {
		t.Fatalf("expected the budget to run out, found %v", limited)
	}
}
