// Command contentcheck validates WordPress payloads against the site's content
// schema, from files or straight from the CMS.
//
// Usage:
//
//	contentcheck kinds
//	contentcheck validate album albums.json
//	contentcheck fetch eventos --cms-url https://granrahback.cl
//	contentcheck posts --cms-url https://granrahback.cl
package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/cms"
	"granrah.cl/granrah-web/internal/content"
	"granrah.cl/granrah-web/internal/format"
	"granrah.cl/granrah-web/internal/observability"
)

// errInvalid signals that issues were reported; the issues are already printed.
var errInvalid = errors.New("payload failed validation")

// endpointKinds maps collection endpoints to the kind their elements validate as.
var endpointKinds = map[string]content.Kind{
	cms.EndpointPosts:    content.KindPost,
	cms.EndpointNews:     content.KindNews,
	cms.EndpointAlbums:   content.KindAlbum,
	cms.EndpointEvents:   content.KindEvent,
	cms.EndpointMusic:    content.KindMusicProduct,
	cms.EndpointClothing: content.KindClothingProduct,
	cms.EndpointPages:    content.KindPage,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "contentcheck:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contentcheck",
		Short:         "Validate WordPress payloads against the Gran Rah content schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("cms-url", os.Getenv("GRANRAH_WEB_CMS_BASE_URL"), "WordPress base URL")
	root.PersistentFlags().Duration("timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newKindsCmd(), newValidateCmd(), newFetchCmd(), newPostsCmd())
	return root
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the content kinds understood by validate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, k := range content.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <kind> <file|->",
		Short: "Validate a JSON payload read from a file or stdin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			single, _ := cmd.Flags().GetBool("single")
			data, err := readInput(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			kind := content.Kind(args[0])
			parse := content.ParseList
			if single {
				parse = content.Parse
			}
			v, err := parse(kind, data)
			return report(cmd.OutOrStdout(), kind, v, err)
		},
	}
	cmd.Flags().Bool("single", false, "payload is a single record rather than a list")
	return cmd
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <endpoint>",
		Short: "Fetch a collection endpoint and validate it",
		Long:  "Fetch a /wp-json/wp/v2/<endpoint> collection (bypassing any cache) and validate every element.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := args[0]
			kind := endpointKinds[endpoint]
			if k, _ := cmd.Flags().GetString("kind"); k != "" {
				kind = content.Kind(k)
			}
			if kind == "" {
				return fmt.Errorf("no default kind for endpoint %q; pass --kind", endpoint)
			}
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			query := url.Values{}
			if slug, _ := cmd.Flags().GetString("slug"); slug != "" {
				query.Set("slug", slug)
			}
			data, err := client.FetchRaw(cmd.Context(), endpoint, query)
			if err != nil {
				return err
			}
			v, err := content.ParseList(kind, data)
			return report(cmd.OutOrStdout(), kind, v, err)
		},
	}
	cmd.Flags().String("kind", "", "override the kind elements are validated as")
	cmd.Flags().String("slug", "", "restrict to one slug")
	return cmd
}

func newPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List blog posts with their categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			posts, err := client.Posts(cmd.Context())
			out := cmd.OutOrStdout()
			for _, p := range posts {
				names := make([]string, 0, len(p.Categories))
				for _, c := range p.Categories {
					names = append(names, c.Name)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", format.FormatShortDate(p.Date), p.Slug,
					format.DecodeEntities(p.Title.Rendered), strings.Join(names, ", "))
			}
			var verr *content.ValidationError
			if errors.As(err, &verr) {
				printIssues(out, verr)
				return errInvalid
			}
			return err
		},
	}
}

func newClient(cmd *cobra.Command) (*cms.Client, error) {
	base, _ := cmd.Flags().GetString("cms-url")
	if strings.TrimSpace(base) == "" {
		return nil, errors.New("--cms-url is required")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := observability.NewLogger(level, "stderr")
	if err != nil {
		logger = zap.NewNop()
	}
	return cms.NewClient(base, cms.WithTimeout(timeout), cms.WithCache(nil, 0), cms.WithLogger(logger)), nil
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

// report prints the outcome of a validation. Partial lists print both the
// number of valid records and every issue.
func report(out io.Writer, kind content.Kind, v any, err error) error {
	var verr *content.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	n, isList := recordCount(v)
	if !isList && verr != nil {
		n = 0
	}
	fmt.Fprintf(out, "%s: %d valid record(s)\n", kind, n)
	if verr == nil {
		fmt.Fprintln(out, "ok")
		return nil
	}
	printIssues(out, verr)
	return errInvalid
}

func printIssues(out io.Writer, verr *content.ValidationError) {
	issues := append([]content.Issue(nil), verr.Issues...)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	fmt.Fprintf(out, "%d issue(s):\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(out, "  %s\n", issue)
	}
}

// recordCount reports the length of a parsed list; single records count as one.
func recordCount(v any) (int, bool) {
	switch items := v.(type) {
	case []content.Page:
		return len(items), true
	case []content.Post:
		return len(items), true
	case []content.News:
		return len(items), true
	case []content.Album:
		return len(items), true
	case []content.Event:
		return len(items), true
	case []content.GalleryPage:
		return len(items), true
	case []content.BioPage:
		return len(items), true
	case []content.HomePage:
		return len(items), true
	case []content.MomentsPage:
		return len(items), true
	case []content.MusicProduct:
		return len(items), true
	case []content.ClothingProduct:
		return len(items), true
	}
	return 1, false
}
