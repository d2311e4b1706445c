package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	var server *httptest.Server

	AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	Describe("request plumbing", func() {
		It("sends the bearer token and a request id", func() {
			var gotAuth, gotReqID string
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotReqID = r.Header.Get("X-Request-ID")
				fmt.Fprint(w, `{"buckets": [], "total": 0}`)
			}))

			client := New(server.URL, WithToken("secret-token"))
			_, err := client.Buckets(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(gotAuth).To(Equal("Bearer secret-token"))
			Expect(gotReqID).NotTo(BeEmpty())
		})

		It("omits the Authorization header without a token", func() {
			var gotAuth string
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				fmt.Fprint(w, `{"success": true, "message": "ok"}`)
			}))

			client := New(server.URL)
			_, err := client.Login(context.Background(), "a@b.c", "pw")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotAuth).To(BeEmpty())
		})

		It("trims a trailing slash from the base URL", func() {
			var gotPath string
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				fmt.Fprint(w, `{"buckets": [], "total": 0}`)
			}))

			client := New(server.URL + "/")
			_, err := client.Buckets(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(gotPath).To(Equal("/api/buckets/"))
		})

		It("maps non-2xx responses to TransportError", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"detail": "Bucket not found"}`)
			}))

			client := New(server.URL)
			_, err := client.Bucket(context.Background(), "missing")

			var transportErr *TransportError
			Expect(errors.As(err, &transportErr)).To(BeTrue())
			Expect(transportErr.Status).To(Equal(http.StatusNotFound))
			Expect(transportErr.Detail).To(Equal("Bucket not found"))
			Expect(err.Error()).To(ContainSubstring("Bucket not found"))
		})

		It("maps connection failures to TransportError with a wrapped cause", func() {
			client := New("http://127.0.0.1:1") // nothing listens here

			_, err := client.Buckets(context.Background())

			var transportErr *TransportError
			Expect(errors.As(err, &transportErr)).To(BeTrue())
			Expect(transportErr.Status).To(BeZero())
			Expect(transportErr.Unwrap()).To(HaveOccurred())
		})
	})

	Describe("auth", func() {
		It("decodes the session from login", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/auth/login"))

				var body map[string]string
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body["email"]).To(Equal("dev@example.com"))

				fmt.Fprint(w, `{"success": true, "message": "Login successful", "session": {"access_token": "at-1", "refresh_token": "rt-1"}}`)
			}))

			client := New(server.URL)
			res, err := client.Login(context.Background(), "dev@example.com", "pw")
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Success).To(BeTrue())
			Expect(res.Session).NotTo(BeNil())
			Expect(res.Session.AccessToken).To(Equal("at-1"))
		})
	})

	Describe("buckets", func() {
		It("creates a bucket", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/api/buckets/"))

				var body map[string]string
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())

				fmt.Fprintf(w, `{"id": "b-1", "user_id": "u-1", "name": %q, "is_private": true, "file_count": 0, "total_size_bytes": 0, "created_at": "2026-01-02T15:04:05Z", "updated_at": "2026-01-02T15:04:05Z"}`, body["name"])
			}))

			client := New(server.URL)
			bucket, err := client.CreateBucket(context.Background(), "research", "papers and notes")
			Expect(err).NotTo(HaveOccurred())

			Expect(bucket.ID).To(Equal("b-1"))
			Expect(bucket.Name).To(Equal("research"))
			Expect(bucket.IsPrivate).To(BeTrue())
		})
	})

	Describe("file upload", func() {
		It("streams the file as a multipart form", func() {
			var gotName string
			var gotContent []byte
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/buckets/b-1/upload"))

				file, header, err := r.FormFile("file")
				Expect(err).NotTo(HaveOccurred())
				defer file.Close()

				gotName = header.Filename
				gotContent, err = io.ReadAll(file)
				Expect(err).NotTo(HaveOccurred())

				fmt.Fprint(w, `{"id": "f-1", "name": "notes.md", "status": "processing"}`)
			}))

			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "notes.md")
			Expect(os.WriteFile(path, []byte("# Notes\n"), 0o644)).To(Succeed())

			client := New(server.URL)
			res, err := client.Upload(context.Background(), "b-1", path)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.ID).To(Equal("f-1"))
			Expect(res.Status).To(Equal("processing"))
			Expect(gotName).To(Equal("notes.md"))
			Expect(string(gotContent)).To(Equal("# Notes\n"))
		})
	})

	Describe("search", func() {
		It("escapes the query", func() {
			var gotQuery string
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query().Get("q")
				fmt.Fprint(w, `{"query": "", "results": [], "total": 0}`)
			}))

			client := New(server.URL)
			_, err := client.Search(context.Background(), "b-1", "what is a bucket?")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotQuery).To(Equal("what is a bucket?"))
		})
	})

	Describe("notifications", func() {
		It("passes paging parameters", func() {
			var gotQuery map[string][]string
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				fmt.Fprint(w, `{"notifications": [], "unread_count": 2, "total": 0}`)
			}))

			client := New(server.URL)
			page, err := client.Notifications(context.Background(), 10, 20, true)
			Expect(err).NotTo(HaveOccurred())

			Expect(page.UnreadCount).To(Equal(2))
			Expect(gotQuery["limit"]).To(Equal([]string{"10"}))
			Expect(gotQuery["offset"]).To(Equal([]string{"20"}))
			Expect(gotQuery["unread_only"]).To(Equal([]string{"true"}))
		})
	})

	Describe("Uploader", func() {
		It("uploads queued files and reports each outcome", func() {
			var mu sync.Mutex
			uploaded := map[string]int{}
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, header, err := r.FormFile("file")
				Expect(err).NotTo(HaveOccurred())

				mu.Lock()
				uploaded[header.Filename]++
				mu.Unlock()

				fmt.Fprintf(w, `{"id": "f-x", "name": %q, "status": "processing"}`, header.Filename)
			}))

			dir := GinkgoT().TempDir()
			paths := make([]string, 3)
			for i := range paths {
				paths[i] = filepath.Join(dir, fmt.Sprintf("doc-%d.md", i))
				Expect(os.WriteFile(paths[i], []byte("content"), 0o644)).To(Succeed())
			}

			client := New(server.URL)

			var outcomes []UploadOutcome
			uploader := NewUploader(context.Background(), &UploaderConfig{
				Client:     client,
				NumWorkers: 2,
				OnOutcome: func(o UploadOutcome) {
					mu.Lock()
					outcomes = append(outcomes, o)
					mu.Unlock()
				},
			})

			for _, p := range paths {
				Expect(uploader.Enqueue(UploadJob{BucketID: "b-1", Path: p})).To(BeTrue())
			}
			uploader.Close()

			Expect(outcomes).To(HaveLen(3))
			for _, o := range outcomes {
				Expect(o.Err).NotTo(HaveOccurred())
				Expect(o.Result.Status).To(Equal("processing"))
			}
			Expect(uploaded).To(HaveLen(3))
		})

		It("reports failed uploads through the outcome", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"detail": "storage unavailable"}`)
			}))

			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "doc.md")
			Expect(os.WriteFile(path, []byte("content"), 0o644)).To(Succeed())

			var mu sync.Mutex
			var outcomes []UploadOutcome
			uploader := NewUploader(context.Background(), &UploaderConfig{
				Client: New(server.URL),
				OnOutcome: func(o UploadOutcome) {
					mu.Lock()
					outcomes = append(outcomes, o)
					mu.Unlock()
				},
			})

			Expect(uploader.Enqueue(UploadJob{BucketID: "b-1", Path: path})).To(BeTrue())
			uploader.Close()

			Expect(outcomes).To(HaveLen(1))

			var transportErr *TransportError
			Expect(errors.As(outcomes[0].Err, &transportErr)).To(BeTrue())
			Expect(transportErr.Detail).To(Equal("storage unavailable"))
		})
	})
})
