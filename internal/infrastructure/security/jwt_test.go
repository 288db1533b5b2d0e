package security

import (
	"testing"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("access", "refresh")
	other := NewTokenManager("another", "another")

	access, refresh, err := tm.Generate("user-1")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		asType  string
		wantErr bool
	}{
		{name: "valid access", token: access, asType: "access"},
		{name: "valid refresh", token: refresh, asType: "refresh"},
		{name: "access is not refresh", token: access, asType: "refresh", wantErr: true},
		{name: "refresh is not access", token: refresh, asType: "access", wantErr: true},
		{name: "garbage", token: "lol.nope.sig", asType: "access", wantErr: true},
		{name: "empty", token: "", asType: "access", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var userID string
			var err error
			if tt.asType == "access" {
				userID, err = tm.ValidateAccessToken(tt.token)
			} else {
				userID, err = tm.ValidateRefreshToken(tt.token)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("validate error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && userID != "user-1" {
				t.Errorf("userID = %q, want %q", userID, "user-1")
			}
		})
	}

	// Чужой секрет не проходит
	if _, err := other.ValidateAccessToken(access); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}
