package mini

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/style"
	"github.com/samber/lo"
)

type state int

const (
	episodeSelectState state = iota + 1
	controlState
	quitState
)

func (m *mini) handleEpisodeSelectState() error {
	var triggers []*session.Trigger
	if err := m.call(func(s *session.Session) { triggers = s.Triggers() }); err != nil {
		return err
	}

	enabled := lo.Filter(triggers, func(t *session.Trigger, _ int) bool { return !t.Disabled })
	if len(enabled) == 0 {
		fail("No playable episodes in the catalog")
		m.setState(quitState)
		return nil
	}

	options := lo.Map(triggers, func(t *session.Trigger, _ int) string {
		return shorten(fmt.Sprintf("%s - %s", t.DisplayTitle, t.Label(session.TriggerIdle)))
	})

	title("Episodes >>")
	var index int
	err := survey.AskOne(&survey.Select{
		Message:  "Pick an episode",
		Options:  append(options, quitOption),
		PageSize: 12,
	}, &index)
	if err != nil {
		return err
	}

	if index == len(triggers) {
		m.setState(quitState)
		return nil
	}

	picked := triggers[index]
	if picked.Disabled {
		fail(fmt.Sprintf("%s is not available yet", picked.DisplayTitle))
		return nil
	}

	var line string
	if err := m.call(func(s *session.Session) {
		s.ActivateTrigger(picked)
		line = m.status.String()
	}); err != nil {
		return err
	}

	fmt.Println(line)
	m.setState(controlState)
	return nil
}

func (m *mini) handleControlState() error {
	var input string
	err := survey.AskOne(&survey.Input{
		Message: style.Faint("[p]lay [<] [>] [s]peed [v N] [m]ute [d]ownload [seek N] [e]pisodes [q]uit"),
	}, &input)
	if err != nil {
		return err
	}

	cmd, err := parseCommand(input)
	if err != nil {
		fail(err.Error())
		return nil
	}

	switch cmd.kind {
	case cmdQuit:
		m.setState(quitState)
		return nil
	case cmdEpisodes:
		m.setState(episodeSelectState)
		return nil
	case cmdStatus:
	}

	var line string
	if err := m.call(func(s *session.Session) {
		cmd.apply(s)
		line = m.status.String()
	}); err != nil {
		return err
	}

	fmt.Println(line)
	return nil
}
