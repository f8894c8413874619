package todos

import (
	"context"
	"fmt"

	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/models"
)

type TodoCmd struct {
	Add         TodoAddCmd         `cmd:"" help:"Add a todo."`
	List        TodoListCmd        `cmd:"" help:"List todos, pending first."`
	Done        TodoDoneCmd        `cmd:"" help:"Toggle a todo's completion."`
	Delete      TodoDeleteCmd      `cmd:"" help:"Delete a todo."`
	SubtaskAdd  TodoSubtaskAddCmd  `cmd:"" name:"subtask-add" help:"Add subtasks to a todo."`
	SubtaskDone TodoSubtaskDoneCmd `cmd:"" name:"subtask-done" help:"Toggle a subtask's completion."`
	Suggest     TodoSuggestCmd     `cmd:"" help:"Ask the AI assistant to break a todo into subtasks."`
}

type TodoAddCmd struct {
	Text     string `arg:"" help:"Todo text."`
	Priority string `help:"Priority: low, medium or high." enum:"low,medium,high" default:"medium"`
}

func (c *TodoAddCmd) Run(ctx *cli.Context) error {
	priority, err := models.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	t, err := ctx.Tracker.AddTodo(c.Text, priority)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Added todo: %s [%s] (%s)\n", t.Text, t.Priority, cli.ShortID(t.ID))
	return nil
}

type TodoListCmd struct {
	Pending bool `help:"Only show pending todos."`
}

func (c *TodoListCmd) Run(ctx *cli.Context) error {
	list := ctx.Tracker.SortedTodos()
	shown := 0
	for _, t := range list {
		if c.Pending && t.Completed {
			continue
		}
		shown++
		fmt.Fprintln(ctx.Out, formatTodo(t))
	}
	if shown == 0 {
		fmt.Fprintln(ctx.Out, "No todos found.")
		return nil
	}
	stats := ctx.Tracker.TaskStats()
	fmt.Fprintf(ctx.Out, "\n%d completed, %d pending\n", stats.Completed, stats.Pending)
	return nil
}

type TodoDoneCmd struct {
	Todo string `arg:"" help:"Todo text or ID."`
}

func (c *TodoDoneCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker.ToggleTodo(c.Todo)
	if err != nil {
		return err
	}
	if t.Completed {
		fmt.Fprintf(ctx.Out, "✓ Completed: %s\n", t.Text)
	} else {
		fmt.Fprintf(ctx.Out, "Reopened: %s\n", t.Text)
	}
	return nil
}

type TodoDeleteCmd struct {
	Todo string `arg:"" help:"Todo text or ID."`
}

func (c *TodoDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker.DeleteTodo(c.Todo)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Deleted todo: %s\n", t.Text)
	return nil
}

type TodoSubtaskAddCmd struct {
	Todo     string   `arg:"" help:"Todo text or ID."`
	Subtasks []string `arg:"" help:"Subtask texts."`
}

func (c *TodoSubtaskAddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker.AddSubtasks(c.Todo, c.Subtasks...)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, formatTodo(t))
	return nil
}

type TodoSubtaskDoneCmd struct {
	Todo    string `arg:"" help:"Todo text or ID."`
	Subtask string `arg:"" help:"Subtask position (1-based), text or ID."`
}

func (c *TodoSubtaskDoneCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker.ToggleSubtask(c.Todo, c.Subtask)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, formatTodo(t))
	return nil
}

type TodoSuggestCmd struct {
	Todo string `arg:"" help:"Todo text or ID."`
}

func (c *TodoSuggestCmd) Run(ctx *cli.Context) error {
	t, added, err := ctx.Assistant.SuggestSubtasks(context.Background(), c.Todo)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		fmt.Fprintln(ctx.Out, "No subtasks suggested. Try again later.")
		return nil
	}
	fmt.Fprintf(ctx.Out, "✓ Added %d subtask(s)\n", len(added))
	fmt.Fprintln(ctx.Out, formatTodo(t))
	return nil
}

func formatTodo(t models.Todo) string {
	text := t.Text
	if t.Completed {
		text = cli.MutedStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s  %s %s", cli.Check(t.Completed), text, priorityLabel(t.Priority), cli.MutedStyle.Render(cli.ShortID(t.ID)))
	for i, st := range t.Subtasks {
		line += fmt.Sprintf("\n    %d. %s %s", i+1, cli.Check(st.Completed), st.Text)
	}
	return line
}

func priorityLabel(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return cli.WarnStyle.Render("[high]")
	case models.PriorityLow:
		return cli.MutedStyle.Render("[low]")
	default:
		return "[" + string(p) + "]"
	}
}
