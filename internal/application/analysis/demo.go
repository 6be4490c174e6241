package analysis

// DemoFileName is the name the built-in sample document is uploaded under.
const DemoFileName = "demo-document.txt"

// DemoDocument is a sample employment agreement for trying the dashboard
// without a file at hand.
const DemoDocument = `# Sample Employment Agreement

This Employment Agreement ("Agreement") is made and entered into as of this 1st day of January, 2023, by and between:

**Tech Solutions Inc.**, a corporation organized and existing under the laws of the State of Delaware, with its principal office located at 123 Innovation Drive, Techville, CA 94000 (hereinafter referred to as the "Company"), and

**John Doe**, an individual residing at 456 Main Street, Anytown, USA 12345 (hereinafter referred to as the "Employee").

## 1. Position and Duties

The Company agrees to employ the Employee in the position of Senior Software Engineer. The Employee will be responsible for designing, developing, and maintaining software applications as assigned by the Company.

## 2. Compensation

The Company will pay the Employee an annual salary of **$150,000**, payable in bi-weekly installments. The Employee's salary may be subject to review and adjustment from time to time at the sole discretion of the Company.

## 3. Confidentiality

The Employee agrees that all information, whether written or oral, concerning the Company's business, technology, business relationships, or financial affairs that the Company has not made publicly available is "Confidential Information." The Employee will not, either during or after the term of this Agreement, disclose any Confidential Information to any third party for any reason.

## 4. Term and Termination

This Agreement shall commence on the date first written above and shall continue until terminated by either party with at least **thirty (30) days' written notice**. The Company may terminate this Agreement for cause at any time, without notice or payment in lieu of notice.

## 5. Governing Law

This Agreement shall be governed by and construed in accordance with the laws of the State of California, without regard to its conflict of laws principles.

IN WITNESS WHEREOF, the parties have executed this Agreement as of the date first above written.

**Company:** Tech Solutions Inc.

_________________________
By: Jane Smith, CEO

**Employee:**

_________________________
John Doe
`
