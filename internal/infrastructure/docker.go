package infrastructure

import (
	"context"
	"fmt"
	"os/exec"
)

// DockerCompose implements domain.ContainerPort by shelling out to
// `docker compose`.
type DockerCompose struct{}

func NewDockerCompose() *DockerCompose {
	return &DockerCompose{}
}

// WaitReady brings the stack up and blocks until the healthcheck passes.
func (d *DockerCompose) WaitReady(ctx context.Context, composePath string) error {
	return d.run(ctx, composePath, "up", "-d", "--wait")
}

func (d *DockerCompose) Stop(ctx context.Context, composePath string) error {
	return d.run(ctx, composePath, "down")
}

func (d *DockerCompose) run(ctx context.Context, composePath string, args ...string) error {
	full := append([]string{"compose", "-f", composePath}, args...)
	cmd := exec.CommandContext(ctx, "docker", full...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("docker compose %v: %w\n%s", args, err, out)
	}
	return nil
}
