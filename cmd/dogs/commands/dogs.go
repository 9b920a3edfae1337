package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/application"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/domain"
)

func newCreateTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-table",
		Short: "Create the dogs table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *application.DogService) error {
				if err := svc.PrepareStore(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "dogs table ready")
				return nil
			})
		},
	}
}

func newDropTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drop-table",
		Short: "Drop the dogs table and every record in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *application.DogService) error {
				if err := svc.ResetStore(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "dogs table dropped")
				return nil
			})
		},
	}
}

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create NAME BREED",
		Short:   "Insert a new dog",
		Example: `  dogs create Buddy "Golden Retriever"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *application.DogService) error {
				dog, err := svc.RegisterDog(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return printDog(cmd.OutOrStdout(), dog)
			})
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every dog in storage order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *application.DogService) error {
				dogs, err := svc.ListDogs(ctx)
				if err != nil {
					return err
				}
				return printDogs(cmd.OutOrStdout(), dogs)
			})
		},
	}
}

func newFindCommand() *cobra.Command {
	var (
		name string
		id   int64
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a dog by exact name or by id",
		Example: `  dogs find --name Buddy
  dogs find --id 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			byName := cmd.Flags().Changed("name")
			byID := cmd.Flags().Changed("id")
			if byName == byID {
				return domain.NewValidationError("exactly one of --name or --id is required")
			}

			return withService(cmd.Context(), func(ctx context.Context, svc *application.DogService) error {
				var (
					dog *application.DogDTO
					err error
				)
				if byName {
					dog, err = svc.GetDogByName(ctx, name)
				} else {
					dog, err = svc.GetDog(ctx, id)
				}
				if err != nil {
					return err
				}
				return printDog(cmd.OutOrStdout(), dog)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "exact dog name")
	cmd.Flags().Int64Var(&id, "id", 0, "dog id")
	return cmd
}

func newFindOrCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find-or-create NAME BREED",
		Short: "Return the dog matching name and breed, inserting it when absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *application.DogService) error {
				dog, err := svc.FindOrRegisterDog(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return printDog(cmd.OutOrStdout(), dog)
			})
		},
	}
}

func newUpdateCommand() *cobra.Command {
	var name, breed string

	cmd := &cobra.Command{
		Use:     "update ID",
		Short:   "Overwrite the name and/or breed of an existing dog",
		Example: `  dogs update 1 --breed Lab`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return domain.NewValidationError(fmt.Sprintf("invalid dog id %q", args[0]))
			}

			var req application.UpdateDogRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("breed") {
				req.Breed = &breed
			}
			if req.Name == nil && req.Breed == nil {
				return domain.NewValidationError("nothing to update: pass --name and/or --breed")
			}

			return withService(cmd.Context(), func(ctx context.Context, svc *application.DogService) error {
				dog, err := svc.UpdateDog(ctx, id, req)
				if err != nil {
					return err
				}
				return printDog(cmd.OutOrStdout(), dog)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&breed, "breed", "", "new breed")
	return cmd
}
