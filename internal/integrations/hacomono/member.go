package hacomono

import (
	"context"
	"fmt"
	"net/http"
)

// CreateMember создает гостевого участника, возвращает его ID
func (c *Client) CreateMember(ctx context.Context, guest GuestMember) (int64, error) {
	guest.IsGuest = true

	var member Member
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/member/members",
		route:  "/member/members",
		body:   guest,
	}, map[string]interface{}{"member": &member})
	if err != nil {
		return 0, err
	}
	if member.ID == 0 {
		return 0, fmt.Errorf("%w: member without id", ErrInvalidResponse)
	}
	return member.ID, nil
}
