package helper

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"schedules_backend/internals/helpers/apperr"
)

func TestNormalizeText(t *testing.T) {
	// и + combining breve composes to й
	decomposed := "  Фізика  \u0438\u0306  "
	if got := NormalizeText(decomposed); got != "Фізика \u0439" {
		t.Fatalf("got %q", got)
	}
	blank := "   "
	if NormalizePtr(&blank) != nil {
		t.Fatal("blank should be nil")
	}
	mail := " Foo@Example.COM "
	if got := NormalizeEmail(&mail); got == nil || *got != "foo@example.com" {
		t.Fatalf("got %v", got)
	}
}

type sample struct {
	Title string `json:"title" validate:"required,max=5"`
	Pair  int    `json:"pair_num" validate:"min=1,max=4"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(nil, "sample", &sample{Title: "toolong", Pair: 9})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error, got %v", err)
	}
	if ve.Fields["title"][0] != "max=5" || ve.Fields["pair_num"][0] != "max=4" {
		t.Fatalf("fields = %v", ve.Fields)
	}
	if err := ValidateStruct(nil, "sample", &sample{Title: "ok", Pair: 2}); err != nil {
		t.Fatal(err)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
		t.Fatalf("%+v", p)
	}
	p = BuildPaginationFromOffset(0, 0, 10)
	if p.TotalPages != 1 || p.HasNext || p.Page != 1 {
		t.Fatalf("%+v", p)
	}
}

func TestOrderBy(t *testing.T) {
	allowed := map[string]string{"title": "subject_title", "created_at": "subject_created_at"}
	p := Params{SortBy: "nope", SortOrder: "desc"}
	if got := p.OrderBy(allowed, "title"); got != "subject_title DESC" {
		t.Fatal(got)
	}
	p = Params{SortBy: "created_at", SortOrder: "asc"}
	if got := p.OrderBy(allowed, "title"); got != "subject_created_at ASC" {
		t.Fatal(got)
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	uid := uuid.New()
	raw, exp, err := IssueAccessToken("secret", uid, "dispatcher1", []string{"dispatcher"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("already expired")
	}
	claims, err := ParseAccessToken("secret", raw)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != uid.String() || len(claims.Roles) != 1 || claims.Roles[0] != "dispatcher" {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := ParseAccessToken("other", raw); err == nil {
		t.Fatal("wrong secret accepted")
	}

	expired, _, _ := IssueAccessToken("secret", uid, "x", nil, -time.Minute)
	if _, err := ParseAccessToken("secret", expired); err == nil {
		t.Fatal("expired token accepted")
	}
}
