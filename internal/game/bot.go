package game

// BotState is the behaviour a bot is currently running.
type BotState string

const (
	BotIdle       BotState = "idle"
	BotPatrolling BotState = "patrolling"
	BotChasing    BotState = "chasing"
	BotAttacking  BotState = "attacking"
	BotDead       BotState = "dead"
)

// Team is the side a bot fights for.
type Team string

const (
	TeamAllies  Team = "allies"
	TeamEnemies Team = "enemies"
)

// Bot is a locally simulated opponent or teammate.
type Bot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Health   float64  `json:"health"`
	Position Vec3     `json:"position"`
	Rotation Vec3     `json:"rotation"`
	Weapon   *Weapon  `json:"weapon"`
	State    BotState `json:"state"`
	Team     Team     `json:"team"`
}

func (b Bot) Clone() Bot {
	c := b
	c.Weapon = b.Weapon.Clone()
	return c
}

// BotUpdate carries the bot fields to change. Nil fields are left as is.
type BotUpdate struct {
	Name     *string
	Health   *float64
	Position *Vec3
	Rotation *Vec3
	Weapon   *Weapon
	State    *BotState
	Team     *Team
}

func (u BotUpdate) apply(b *Bot) {
	setIf(&b.Name, u.Name)
	setIf(&b.Health, u.Health)
	setIf(&b.Position, u.Position)
	setIf(&b.Rotation, u.Rotation)
	if u.Weapon != nil {
		b.Weapon = u.Weapon.Clone()
	}
	setIf(&b.State, u.State)
	setIf(&b.Team, u.Team)
}
