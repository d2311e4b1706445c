package api

import (
	"context"
	"net/http"
	"time"
)

// TeamMember is one delegated account under a team owner.
type TeamMember struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	MemberID      string     `json:"member_id,omitempty"`
	Name          string     `json:"name"`
	RealEmail     string     `json:"real_email"`
	AIveilixEmail string     `json:"aiveilix_email"`
	Color         string     `json:"color"`
	ShowName      bool       `json:"show_name"`
	IsActive      bool       `json:"is_active"`
	RemovedAt     *time.Time `json:"removed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	BucketCount   int        `json:"bucket_count,omitempty"`
}

// BucketPermission grants a member capabilities on one bucket.
type BucketPermission struct {
	BucketID  string `json:"bucket_id"`
	CanView   bool   `json:"can_view"`
	CanChat   bool   `json:"can_chat"`
	CanUpload bool   `json:"can_upload"`
	CanDelete bool   `json:"can_delete"`
}

// BucketAccess is one granted bucket permission as stored server-side.
type BucketAccess struct {
	ID           string    `json:"id"`
	TeamMemberID string    `json:"team_member_id"`
	BucketID     string    `json:"bucket_id"`
	BucketName   string    `json:"bucket_name,omitempty"`
	CanView      bool      `json:"can_view"`
	CanChat      bool      `json:"can_chat"`
	CanUpload    bool      `json:"can_upload"`
	CanDelete    bool      `json:"can_delete"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamActivityEntry is one audit log row for team actions.
type TeamActivityEntry struct {
	ID           string         `json:"id"`
	OwnerID      string         `json:"owner_id"`
	TeamMemberID string         `json:"team_member_id,omitempty"`
	BucketID     string         `json:"bucket_id,omitempty"`
	ActionType   string         `json:"action_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	ResourceName string         `json:"resource_name,omitempty"`
	MemberColor  string         `json:"member_color,omitempty"`
	MemberName   string         `json:"member_name,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// TeamInfo describes the caller's own team standing.
type TeamInfo struct {
	IsTeamMember bool   `json:"is_team_member"`
	OwnerID      string `json:"owner_id,omitempty"`
	TeamMemberID string `json:"team_member_id,omitempty"`
	Color        string `json:"color,omitempty"`
	Name         string `json:"name,omitempty"`
	ShowName     bool   `json:"show_name,omitempty"`
}

type addTeamMemberRequest struct {
	Name      string `json:"name"`
	RealEmail string `json:"real_email"`
	Password  string `json:"password"`
	Color     string `json:"color,omitempty"`
}

// AddTeamMember creates a delegated member account under the caller.
func (c *Client) AddTeamMember(ctx context.Context, name, realEmail, password, color string) (*TeamMember, error) {
	var out TeamMember
	err := c.doJSON(ctx, http.MethodPost, "/api/team/members", addTeamMemberRequest{
		Name:      name,
		RealEmail: realEmail,
		Password:  password,
		Color:     color,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TeamMembers lists the caller's team.
func (c *Client) TeamMembers(ctx context.Context) ([]TeamMember, error) {
	var out []TeamMember
	if err := c.doJSON(ctx, http.MethodGet, "/api/team/members", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamMember fetches one member by id.
func (c *Client) TeamMember(ctx context.Context, memberID string) (*TeamMember, error) {
	var out TeamMember
	if err := c.doJSON(ctx, http.MethodGet, "/api/team/members/"+memberID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTeamMember patches a member's display settings. Nil fields are left
// unchanged.
func (c *Client) UpdateTeamMember(ctx context.Context, memberID string, color *string, showName, isActive *bool) (*TeamMember, error) {
	patch := map[string]any{}
	if color != nil {
		patch["color"] = *color
	}
	if showName != nil {
		patch["show_name"] = *showName
	}
	if isActive != nil {
		patch["is_active"] = *isActive
	}

	var out TeamMember
	if err := c.doJSON(ctx, http.MethodPatch, "/api/team/members/"+memberID, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveTeamMember deactivates a member and revokes their access.
func (c *Client) RemoveTeamMember(ctx context.Context, memberID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/team/members/"+memberID, nil, nil)
}

// AssignBuckets replaces a member's bucket permissions.
func (c *Client) AssignBuckets(ctx context.Context, memberID string, perms []BucketPermission) error {
	return c.doJSON(ctx, http.MethodPost, "/api/team/members/"+memberID+"/buckets", map[string]any{
		"permissions": perms,
	}, nil)
}

// MemberBuckets lists the buckets a member can reach.
func (c *Client) MemberBuckets(ctx context.Context, memberID string) ([]BucketAccess, error) {
	var out []BucketAccess
	if err := c.doJSON(ctx, http.MethodGet, "/api/team/members/"+memberID+"/buckets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RevokeBucketAccess removes a member's access to one bucket.
func (c *Client) RevokeBucketAccess(ctx context.Context, memberID, bucketID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/team/members/"+memberID+"/buckets/"+bucketID, nil, nil)
}

// TeamActivity returns the recent team audit log.
func (c *Client) TeamActivity(ctx context.Context) ([]TeamActivityEntry, error) {
	var out []TeamActivityEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/team/activity", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamInfo returns the caller's own team standing.
func (c *Client) TeamInfo(ctx context.Context) (*TeamInfo, error) {
	var out TeamInfo
	if err := c.doJSON(ctx, http.MethodGet, "/api/team/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
