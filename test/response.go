package test

import (
	"citizens-link/internal/global/response"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	require.Equal(t, expected.Code, resp.Code)
	require.Equal(t, expected.Message, resp.Msg)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	require.Equal(t, int32(200), resp.Code, "msg=%s tips=%s origin=%s", resp.Msg, resp.Tips, resp.Origin)
}

// DecodeData 把 resp.Data 解析到 dst
func DecodeData(t *testing.T, resp response.ResponseBody, dst any) {
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dst))
}
