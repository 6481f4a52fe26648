package cli

import (
	"errors"
	"log/slog"

	"github.com/dgallion1/resumatch/internal/match"
	"github.com/spf13/cobra"
)

type matchFlags struct {
	skills     []string
	jobSkills  []string
	resumePath string
	strategy   string
}

func newMatchCmd(logger func() *slog.Logger) *cobra.Command {
	var flags matchFlags

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score candidate skills against job skills",
		Long: "Score candidate skills against job skills. Candidate skills come from --skills " +
			"or are extracted from --resume. Without --job-skills the default job skill list is used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			candidate := flags.skills
			if flags.resumePath != "" {
				opts, err := parseFlags{strategy: flags.strategy, pdftotext: true}.options()
				if err != nil {
					return err
				}
				rec, err := parseFile(flags.resumePath, opts)
				if err != nil {
					return err
				}
				logger().Debug("resume skills", "file", flags.resumePath, "skills", rec.Skills)
				candidate = append(candidate, rec.Skills...)
			}
			if len(candidate) == 0 {
				return errors.New("no candidate skills: pass --skills or --resume")
			}

			jobSkills := flags.jobSkills
			if len(jobSkills) == 0 {
				jobSkills = match.DefaultJobSkills
			}
			return writeJSON(cmd.OutOrStdout(), match.Skills(candidate, jobSkills))
		},
	}

	cmd.Flags().StringSliceVar(&flags.skills, "skills", nil, "candidate skills, comma separated")
	cmd.Flags().StringSliceVar(&flags.jobSkills, "job-skills", nil, "job skills, comma separated (default: built-in list)")
	cmd.Flags().StringVarP(&flags.resumePath, "resume", "r", "", "resume file to extract candidate skills from")
	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", "regex", "profile strategy when parsing --resume")
	return cmd
}
