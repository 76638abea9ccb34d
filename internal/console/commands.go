package console

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pixil98/go-fps/internal/catalog"
	"github.com/pixil98/go-fps/internal/combat"
	"github.com/pixil98/go-fps/internal/display"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/messaging"
)

func (c *Console) buildCommands() map[string]command {
	return map[string]command{
		"help":    {usage: "help", help: "List commands", run: c.help},
		"status":  {usage: "status", help: "Show match and player status", run: c.status},
		"loadout": {usage: "loadout", help: "Show equipped weapons", run: c.loadout},
		"streaks": {usage: "streaks", help: "Show kill streaks", run: c.streaks},
		"bots":    {usage: "bots", help: "List bots", run: c.bots},
		"equip":   {usage: "equip", help: "Equip a weapon from the arsenal", run: c.equip},
		"map":     {usage: "map", help: "Choose the map", run: c.chooseMap},
		"mode":    {usage: "mode", help: "Choose the game mode", run: c.chooseMode},
		"start":   {usage: "start", help: "Spawn bots and start a match", run: c.start},
		"pause":   {usage: "pause", help: "Pause or resume the match", run: c.pause},
		"streak":  {usage: "streak", help: "Call in the first affordable kill streak", run: c.streak},
		"reset":   {usage: "reset", help: "Return to the menu with a fresh player", run: c.reset},
		"watch":   {usage: "watch", help: "Follow game events until Enter is pressed", run: c.watch},
		"quit":    {usage: "quit", help: "Close the console", run: func(*session, []string) error { return errQuit }},
	}
}

func (c *Console) status(s *session, _ []string) error {
	p := c.store.Player()

	var b strings.Builder
	fmt.Fprintf(&b, "Phase: %s  Map: %s  Mode: %s  Score: %d\n",
		display.Capitalize(string(c.store.GameState())), c.store.CurrentMap(), c.store.GameMode(), c.store.Score())
	fmt.Fprintf(&b, "Level %d (prestige %d)  XP %d/%d\n", p.Level, p.Prestige, p.XP, p.XPToNextLevel)
	fmt.Fprintf(&b, "Health %.0f/%.0f  Armor %.0f\n", p.Health, p.MaxHealth, p.Armor)
	if w := p.ActiveWeapon(); w != nil {
		fmt.Fprintf(&b, "Weapon: %s  %s\n", w.Name, ammo(w))
	}
	s.printf("%s", b.String())
	return nil
}

func ammo(w *game.Weapon) string {
	if w.Unlimited() {
		return "∞"
	}
	return fmt.Sprintf("%d/%d", w.CurrentAmmo, w.ReserveAmmo)
}

func (c *Console) loadout(s *session, _ []string) error {
	p := c.store.Player()

	var b strings.Builder
	for _, slot := range game.Slots {
		marker := " "
		if slot == p.ActiveWeaponSlot {
			marker = "*"
		}
		w := p.Weapons.Get(slot)
		if w == nil {
			fmt.Fprintf(&b, "%s %-9s (empty)\n", marker, slot)
			continue
		}
		fmt.Fprintf(&b, "%s %-9s %-16s %-9s lvl %d", marker, slot, w.Name, ammo(w), w.Level)
		if w.Level < w.MaxLevel {
			fmt.Fprintf(&b, " (%d/%d xp)", w.XP, w.XPToNextLevel)
		}
		b.WriteString("\n")
		var atts []string
		for _, a := range w.Attachments.Equipped() {
			atts = append(atts, "+ "+a.Name)
		}
		if len(atts) > 0 {
			b.WriteString(display.Indent(strings.Join(atts, "\n"), 6) + "\n")
		}
	}
	s.printf("%s", b.String())
	return nil
}

func (c *Console) streaks(s *session, _ []string) error {
	p := c.store.Player()

	var b strings.Builder
	fmt.Fprintf(&b, "Streak counter: %d\n", p.KillStreak)
	for _, ks := range p.AvailableKillStreaks {
		state := ""
		switch {
		case p.StreakActive(ks.ID):
			state = "ACTIVE"
		case ks.Cost <= p.KillStreak:
			state = "ready"
		}
		fmt.Fprintf(&b, "  %-20s cost %2d  %s\n", ks.Name, ks.Cost, state)
	}
	s.printf("%s", b.String())
	return nil
}

func (c *Console) bots(s *session, _ []string) error {
	bots := c.store.Bots()
	if len(bots) == 0 {
		s.printf("No bots.\n")
		return nil
	}

	var b strings.Builder
	for _, bot := range bots {
		weapon := "unarmed"
		if bot.Weapon != nil {
			weapon = bot.Weapon.Name
		}
		fmt.Fprintf(&b, "  %-7s %-8s %-8s %-11s %3.0f hp  %s\n", bot.ID, bot.Name, bot.Team, bot.State, bot.Health, weapon)
	}
	s.printf("%s", b.String())
	return nil
}

func (c *Console) equip(s *session, _ []string) error {
	weapons := newSelector[*game.Weapon]()
	for _, w := range c.store.Arsenal() {
		if w.Unlocked {
			weapons.add(w.Name, w)
		}
	}
	w, err := weapons.Prompt(s.r, &lockedWriter{s}, "Which weapon?")
	if err != nil {
		return err
	}

	slots := newSelector[game.Slot]()
	for _, slot := range game.Slots {
		slots.add(string(slot), slot)
	}
	slot, err := slots.Prompt(s.r, &lockedWriter{s}, "Which slot?")
	if err != nil {
		return err
	}

	if err := c.store.EquipWeapon(w.ID, slot); err != nil {
		return err
	}
	s.printf("Equipped %s as %s.\n", w.Name, slot)
	return nil
}

func (c *Console) chooseMap(s *session, _ []string) error {
	sel := newSelector[game.MapType]()
	for _, m := range []game.MapType{game.MapUrban, game.MapForest, game.MapFacility} {
		sel.add(display.Label(string(m)), m)
	}
	m, err := sel.Prompt(s.r, &lockedWriter{s}, "Which map?")
	if err != nil {
		return err
	}
	return c.store.SetCurrentMap(m)
}

func (c *Console) chooseMode(s *session, _ []string) error {
	sel := newSelector[game.GameMode]()
	for _, m := range []game.GameMode{game.ModeTeamDeathmatch, game.ModeFreeForAll, game.ModeDomination, game.ModeCaptureTheFlag} {
		sel.add(strings.ToUpper(string(m)), m)
	}
	m, err := sel.Prompt(s.r, &lockedWriter{s}, "Which mode?")
	if err != nil {
		return err
	}
	return c.store.SetGameMode(m)
}

func (c *Console) start(s *session, _ []string) error {
	if c.store.GameState() != game.PhaseMenu {
		return fmt.Errorf("a match is already running")
	}

	c.rngMu.Lock()
	err := catalog.StartMatch(c.store, c.rng)
	c.rngMu.Unlock()
	if err != nil {
		return err
	}

	s.printf("Match started on %s with %d bots.\n", c.store.CurrentMap(), len(c.store.Bots()))
	return nil
}

func (c *Console) pause(s *session, _ []string) error {
	c.input.Push(combat.InputEvent{Kind: combat.TogglePause})
	return nil
}

func (c *Console) streak(s *session, _ []string) error {
	c.input.Push(combat.InputEvent{Kind: combat.ActivateKillStreak})
	return nil
}

func (c *Console) reset(s *session, _ []string) error {
	purge, err := PromptYN(s.r, &lockedWriter{s}, "Also wipe saved progress and settings? ")
	if err != nil {
		return err
	}
	if err := c.store.ResetGame(purge); err != nil {
		return err
	}
	if purge {
		s.printf("Game reset and saved progress wiped.\n")
	} else {
		s.printf("Game reset.\n")
	}
	return nil
}

func (c *Console) watch(s *session, _ []string) error {
	if c.events == nil {
		return fmt.Errorf("event feed is not available")
	}

	unsub, err := c.events.Subscribe(c.subject, func(_ string, data []byte) {
		var n messaging.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			return
		}
		if n.Message != "" {
			s.printf("[%s] %s\n", n.Kind, n.Message)
			return
		}
		s.printf("[%s] %d -> %d\n", n.Kind, n.Previous, n.Current)
	})
	if err != nil {
		return err
	}
	defer unsub()

	s.printf("Watching events. Press Enter to stop.\n")
	s.r.ReadString('\n')
	return nil
}
