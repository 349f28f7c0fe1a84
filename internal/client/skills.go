package client

import (
	"context"
	"strconv"
)

// ListSkills fetches all configured skills.
func (c *Client) ListSkills(ctx context.Context) ([]Skill, error) {
	var out []Skill
	if err := c.get(ctx, "/skills/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSkill fetches a single skill by ID.
func (c *Client) GetSkill(ctx context.Context, id int) (*Skill, error) {
	var out Skill
	if err := c.get(ctx, "/skills/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSkill registers a new skill and returns the stored row.
func (c *Client) CreateSkill(ctx context.Context, body SkillCreate) (*Skill, error) {
	var out Skill
	if err := c.post(ctx, "/skills/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSkill applies a partial update. Builtin skills only accept an
// is_enabled toggle; the backend rejects anything else.
func (c *Client) UpdateSkill(ctx context.Context, id int, body SkillUpdate) (*Skill, error) {
	var out Skill
	if err := c.put(ctx, "/skills/"+strconv.Itoa(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSkill removes a non-builtin skill.
func (c *Client) DeleteSkill(ctx context.Context, id int) error {
	return c.delete(ctx, "/skills/"+strconv.Itoa(id), nil)
}
