package credentials_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jutt313/aiveilix-go/pkg/credentials"
)

var _ = Describe("Manager", func() {
	var mgr *credentials.Manager

	BeforeEach(func() {
		var err error
		mgr, err = credentials.NewManager(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
	})

	It("loads empty credentials when no file exists", func() {
		creds, err := mgr.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(creds.Account.AccessToken).To(BeEmpty())
	})

	It("stores and resolves a session token", func() {
		Expect(mgr.SetSession("dev@example.com", "tok-123")).To(Succeed())

		token, err := mgr.Token()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("tok-123"))

		email, err := mgr.Email()
		Expect(err).NotTo(HaveOccurred())
		Expect(email).To(Equal("dev@example.com"))
	})

	It("writes the credentials file with 0600 permissions", func() {
		Expect(mgr.SetSession("dev@example.com", "tok-123")).To(Succeed())

		info, err := os.Stat(mgr.GetTarget())
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
	})

	It("prefers the session token over a stored API key", func() {
		Expect(mgr.SetAPIKey("avx-key")).To(Succeed())
		Expect(mgr.SetSession("dev@example.com", "tok-123")).To(Succeed())

		token, err := mgr.Token()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("tok-123"))
	})

	It("falls back to the API key after the session is cleared", func() {
		Expect(mgr.SetAPIKey("avx-key")).To(Succeed())
		Expect(mgr.SetSession("dev@example.com", "tok-123")).To(Succeed())
		Expect(mgr.Clear()).To(Succeed())

		token, err := mgr.Token()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("avx-key"))
	})

	It("prefers the token environment variable over everything", func() {
		GinkgoT().Setenv(credentials.EnvToken, "env-tok")
		Expect(mgr.SetSession("dev@example.com", "tok-123")).To(Succeed())

		token, err := mgr.Token()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("env-tok"))
	})

	It("rejects saving nil credentials", func() {
		Expect(mgr.Save(nil)).NotTo(Succeed())
	})
})
