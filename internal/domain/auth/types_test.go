package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("ADMIN"))
	assert.Equal(t, RoleManager, ParseRole(" manager "))
	assert.Equal(t, RoleHRTeam, ParseRole("hr_team"))
	assert.Equal(t, RoleEmployee, ParseRole("intern"))
	assert.Equal(t, RoleEmployee, ParseRole(""))
}

func TestRole_Privileged(t *testing.T) {
	assert.True(t, RoleAdmin.Privileged())
	assert.True(t, RoleManager.Privileged())
	assert.False(t, RoleEmployee.Privileged())
	assert.False(t, RoleHRTeam.Privileged())
}

func TestLoginResponse_DecodesBackendShape(t *testing.T) {
	body := `{"access_token":"tok-1","user":{"id":7,"employeeCode":"E007","employeeName":"Ada","officialEmail":"ada@example.com","role":"Manager"}}`

	var resp LoginResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Equal(t, "tok-1", resp.AccessToken)
	assert.Equal(t, User{ID: "7", EmployeeCode: "E007", EmployeeName: "Ada", OfficialEmail: "ada@example.com", Role: RoleManager}, resp.User)
}

func TestAuthRecord_JSONKeys(t *testing.T) {
	b, err := json.Marshal(AuthRecord{User: &User{ID: "1", Role: RoleAdmin}, AccessToken: "t"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"access_token":"t"`)
	assert.Contains(t, string(b), `"user":{`)
}

func TestID_UnmarshalJSON(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":42,"b":"9f1c","c":null}`), &v))
	assert.Equal(t, ID("42"), v.A)
	assert.Equal(t, ID("9f1c"), v.B)
	assert.True(t, v.C.IsZero())

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &bad))
}

func TestID_MarshalJSON(t *testing.T) {
	b, err := json.Marshal([]ID{"42", "abc", "007", ""})
	require.NoError(t, err)
	assert.JSONEq(t, `[42,"abc","007",""]`, string(b))
}
