package service

import (
	"context"
	"reflect"
	"testing"

	"hindipath/internal/apperr"
	"hindipath/internal/repository"
	"hindipath/internal/testutil"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "asha")
	users := repository.NewUserRepository(db)
	svc := NewProfileService(users, newBadgeService(db))

	t.Run("only supplied fields change", func(t *testing.T) {
		earned, err := svc.UpdateSettings(ctx, user, SettingsUpdate{MyLang: strPtr("english"), Onboarded: boolPtr(true)})
		if err != nil {
			t.Fatalf("UpdateSettings() error = %v", err)
		}
		if len(earned) != 0 {
			t.Errorf("unexpected badges %v", badgeIDs(earned))
		}
		got, err := users.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.MyLang != "english" || !got.Onboarded || got.TeachLevel != "beginner" {
			t.Errorf("user after update = %+v", got)
		}
	})

	t.Run("intermediate awards its badge once", func(t *testing.T) {
		earned, err := svc.UpdateSettings(ctx, user, SettingsUpdate{TeachLevel: strPtr("intermediate")})
		if err != nil {
			t.Fatal(err)
		}
		if got := badgeIDs(earned); !reflect.DeepEqual(got, []string{"intermediate"}) {
			t.Errorf("first update badges = %v", got)
		}

		earned, err = svc.UpdateSettings(ctx, user, SettingsUpdate{TeachLevel: strPtr("intermediate")})
		if err != nil {
			t.Fatal(err)
		}
		if len(earned) != 0 {
			t.Errorf("second update badges = %v, want none", badgeIDs(earned))
		}
	})

	t.Run("beginner awards nothing", func(t *testing.T) {
		earned, err := svc.UpdateSettings(ctx, user, SettingsUpdate{TeachLevel: strPtr("beginner")})
		if err != nil {
			t.Fatal(err)
		}
		if len(earned) != 0 {
			t.Errorf("badges = %v, want none", badgeIDs(earned))
		}
	})

	t.Run("values outside the enums are rejected", func(t *testing.T) {
		tests := []struct {
			name   string
			update SettingsUpdate
		}{
			{"language", SettingsUpdate{MyLang: strPtr("french")}},
			{"level", SettingsUpdate{TeachLevel: strPtr("expert")}},
			{"empty level", SettingsUpdate{TeachLevel: strPtr("")}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.UpdateSettings(ctx, user, tt.update)
				requireKind(t, err, apperr.KindValidation)
			})
		}
	})
}
