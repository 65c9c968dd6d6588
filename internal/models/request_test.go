package models

import "testing"

func TestStartRequestValidate(t *testing.T) {
	valid := StartRequest{TrackID: "general", RoleID: "general-hr", QuinnMode: ModeSupportive}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request should pass, got %v", err)
	}

	cases := []struct {
		name string
		req  StartRequest
		code string
	}{
		{"missing track", StartRequest{RoleID: "r", QuinnMode: ModeDirect}, "missing_track"},
		{"missing role", StartRequest{TrackID: "t", QuinnMode: ModeDirect}, "missing_role"},
		{"invalid mode", StartRequest{TrackID: "t", RoleID: "r", QuinnMode: "CASUAL"}, "invalid_mode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			resp, ok := err.(*ErrorResponse)
			if !ok {
				t.Fatalf("expected *ErrorResponse, got %T", err)
			}
			if resp.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, resp.Code)
			}
		})
	}
}

func TestAnswerRequestValidate(t *testing.T) {
	valid := AnswerRequest{SessionID: "s", QuestionID: "q", Answer: "my answer"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request should pass, got %v", err)
	}

	blank := AnswerRequest{SessionID: "s", QuestionID: "q", Answer: "   "}
	if err := blank.Validate(); err == nil {
		t.Fatal("whitespace-only answer should fail validation")
	}
}
